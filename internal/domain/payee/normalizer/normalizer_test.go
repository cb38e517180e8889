package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePayeeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"plain name lowercased", "Starbucks", "starbucks"},
		{"store number stripped", "STARBUCKS #552", "starbucks"},
		{"store number mid-string with location", "WALMART #1234 DALLAS TX", "walmart"},
		{"trailing descriptor stripped", "Walmart Supercenter", "walmart"},
		{"pos prefix stripped", "POS STARBUCKS #552", "starbucks"},
		{"square prefix and amount stripped", "SQ* COFFEE SHOP $4.50", "coffee shop"},
		{"tst prefix stripped", "TST* BURGER JOINT", "burger joint"},
		{"ach prefix stripped", "ACH NETFLIX", "netflix"},
		{"trailing numeric codes stripped", "NETFLIX.COM 855 1234567", "netflix com"},
		{"dollar amount stripped", "COFFEE $1,234.56 BAR", "coffee bar"},
		{"trailing opaque id stripped", "AMAZON MKTPL*AB12C3456", "amazon mktpl"},
		{"sole long token kept", "supercenter", "supercenter"},
		{"prefix requires following space", "Checkers Drive In", "checkers drive in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePayeeName(tt.input))
		})
	}
}

func TestNormalizePayeeName_Idempotent(t *testing.T) {
	inputs := []string{
		"WALMART #1234 DALLAS TX",
		"SQ* COFFEE SHOP $4.50",
		"Walmart Supercenter",
		"NETFLIX.COM 855 1234567",
	}
	for _, input := range inputs {
		once := NormalizePayeeName(input)
		assert.Equal(t, once, NormalizePayeeName(once), "input %q", input)
	}
}

func TestCleanPayeeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"casing preserved", "Walmart Supercenter", "Walmart Supercenter"},
		{"prefix and store number stripped", "POS WALMART #1234 DALLAS TX", "WALMART DALLAS TX"},
		{"trailing numbers stripped", "NETFLIX.COM 855 1234567", "NETFLIX.COM"},
		{"digit-bearing trailing id stripped", "UBER TRIP HELP8X2K91", "UBER TRIP"},
		{"plain word untouched", "Rent", "Rent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPayeeName(tt.input))
		})
	}
}
