package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func row(idx int, original, normalized, cleaned string) normalizedRow {
	return normalizedRow{
		RowInput:        RowInput{RowIndex: idx, PayeeName: original, OriginalPayee: original},
		normalizedPayee: normalized,
		cleanedPayee:    cleaned,
	}
}

func TestSelectCanonicalName(t *testing.T) {
	tests := []struct {
		name    string
		members []normalizedRow
		want    string
	}{
		{
			name:    "empty cluster",
			members: nil,
			want:    "",
		},
		{
			name: "shortest cleaned original behind the winning key",
			members: []normalizedRow{
				row(0, "WALMART #1234 DALLAS TX", "walmart", "WALMART DALLAS TX"),
				row(1, "WALMART #5678 HOUSTON TX", "walmart", "WALMART HOUSTON TX"),
				row(2, "Walmart Supercenter", "walmart", "Walmart Supercenter"),
			},
			want: "Walmart",
		},
		{
			name: "frequency beats brevity",
			members: []normalizedRow{
				row(0, "NETFLIX.COM", "netflix com", "NETFLIX.COM"),
				row(1, "NETFLIX.COM", "netflix com", "NETFLIX.COM"),
				row(2, "NFLX", "nflx", "NFLX"),
			},
			want: "Netflix.com",
		},
		{
			name: "brevity breaks a frequency tie",
			members: []normalizedRow{
				row(0, "ACME", "acme", "ACME"),
				row(1, "ACME SERVICES GROUP", "acme services group", "ACME SERVICES GROUP"),
			},
			want: "ACME",
		},
		{
			name: "falls back to original payee when cleaning emptied the row",
			members: []normalizedRow{
				row(0, "STARBUCKS", "starbucks", ""),
			},
			want: "Starbucks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectCanonicalName(tt.members))
		})
	}
}

func TestClusterConfidence(t *testing.T) {
	t.Run("singleton is fully confident", func(t *testing.T) {
		members := []normalizedRow{row(0, "WALMART", "walmart", "WALMART")}
		assert.Equal(t, 1.0, clusterConfidence(members))
	})

	t.Run("identical keys stay fully confident", func(t *testing.T) {
		members := []normalizedRow{
			row(0, "WALMART #1", "walmart", "WALMART"),
			row(1, "WALMART #2", "walmart", "WALMART"),
		}
		assert.Equal(t, 1.0, clusterConfidence(members))
	})

	t.Run("mean pairwise similarity", func(t *testing.T) {
		members := []normalizedRow{
			row(0, "STARBUCKS", "starbucks", "STARBUCKS"),
			row(1, "STARBUCKS COFFEE", "starbucks coffee", "STARBUCKS COFFEE"),
		}
		assert.InDelta(t, 0.5875, clusterConfidence(members), 1e-6)
	})
}
