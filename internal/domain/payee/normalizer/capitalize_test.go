package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmartCapitalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short acronym preserved", "IBMC", "IBMC"},
		{"intentional mixed case preserved", "MidAmerican", "MidAmerican"},
		{"brand lower-upper casing preserved", "iPhone", "iPhone"},
		{"store number and location stripped", "WALMART #1234 DALLAS TX", "Walmart"},
		{"all caps word title-cased", "STARBUCKS", "Starbucks"},
		{"all lowercase title-cased", "starbucks coffee", "Starbucks Coffee"},
		{"known abbreviation uppercased", "acme holdings llc", "Acme Holdings LLC"},
		{"inc abbreviation uppercased", "Netflix inc", "Netflix INC"},
		{"long digit run stripped, short caps kept", "UBER 77001 TRIP", "UBER TRIP"},
		{"dollar amount stripped", "VENDING $2.50 SNACKS", "Vending Snacks"},
		{"mixed input preserved where sensible", "Walmart Supercenter", "Walmart Supercenter"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SmartCapitalize(tt.input))
		})
	}
}
