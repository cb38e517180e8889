// Package normalizer provides payee string sanitization: it reduces raw
// bank-statement merchant strings to comparison keys and display-ready names.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Leading transaction-type markers that banks prepend to the payee.
	txPrefixPattern = regexp.MustCompile(`^(debit|credit|pos|atm|check|sq\*?|tst\*?|pymt|pmt|ach)\s+`)

	// Store numbers like "#1234". They appear mid-string as often as at the end.
	storeNumberPattern = regexp.MustCompile(`#\d+`)

	// Embedded dollar amounts: "$12.34", "$1,234.56", "$ 5".
	dollarAmountPattern = regexp.MustCompile(`\$\s?\d[\d,]*(\.\d+)?`)

	// Trailing runs of numeric location/terminal codes.
	trailingNumbersPattern = regexp.MustCompile(`(\s+\d+)+$`)

	// Characters with no comparison value. $, #, *, . and , survive until
	// the noise rules above have had a chance to use them.
	punctPattern = regexp.MustCompile(`[^a-zA-Z0-9\s$#*.,]`)

	residualPunctPattern = regexp.MustCompile(`[$#*.,]`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// usStateCodes covers the 50 states plus DC, used to spot trailing
// "CITY ST" location suffixes on card transactions.
var usStateCodes = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true, "co": true,
	"ct": true, "de": true, "dc": true, "fl": true, "ga": true, "hi": true,
	"id": true, "il": true, "in": true, "ia": true, "ks": true, "ky": true,
	"la": true, "me": true, "md": true, "ma": true, "mi": true, "mn": true,
	"ms": true, "mo": true, "mt": true, "ne": true, "nv": true, "nh": true,
	"nj": true, "nm": true, "ny": true, "nc": true, "nd": true, "oh": true,
	"ok": true, "or": true, "pa": true, "ri": true, "sc": true, "sd": true,
	"tn": true, "tx": true, "ut": true, "vt": true, "va": true, "wa": true,
	"wv": true, "wi": true, "wy": true,
}

// NormalizePayeeName reduces a raw payee string to a lowercase comparison
// key. It strips transaction-type prefixes, store numbers, dollar amounts,
// trailing location suffixes, trailing numeric codes and trailing opaque
// identifiers. Pure function; empty input yields an empty string.
func NormalizePayeeName(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Location suffixes are detected before lowercasing: a trailing "TX" is
	// a state code, a trailing "in" is just a word.
	s = strings.Join(stripTrailingLocation(strings.Fields(s)), " ")

	s = strings.ToLower(s)
	s = punctPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	s = txPrefixPattern.ReplaceAllString(s, "")
	s = storeNumberPattern.ReplaceAllString(s, " ")
	s = dollarAmountPattern.ReplaceAllString(s, " ")
	s = residualPunctPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = trailingNumbersPattern.ReplaceAllString(s, "")

	words := stripTrailingOpaqueID(strings.Fields(s))
	return strings.Join(words, " ")
}

// CleanPayeeName strips the same import noise as NormalizePayeeName but
// preserves the original casing, producing the matcher-facing display
// candidate for a row.
func CleanPayeeName(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if loc := txPrefixPattern.FindStringIndex(strings.ToLower(s)); loc != nil {
		s = strings.TrimSpace(s[loc[1]:])
	}
	s = storeNumberPattern.ReplaceAllString(s, " ")
	s = dollarAmountPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = trailingNumbersPattern.ReplaceAllString(s, "")
	s = trimTrailingOpaqueToken(s)
	return strings.TrimSpace(s)
}

// stripTrailingLocation drops a trailing all-caps US state code and, when
// one was present, the single all-caps city word before it.
// "WALMART DALLAS TX" -> "WALMART".
func stripTrailingLocation(words []string) []string {
	if len(words) < 2 {
		return words
	}
	last := words[len(words)-1]
	if !isAllUpper(last) || !usStateCodes[strings.ToLower(last)] {
		return words
	}
	words = words[:len(words)-1]
	if len(words) >= 2 && isAlphaWord(words[len(words)-1]) && isAllUpper(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return words
}

// stripTrailingOpaqueID drops a trailing alphanumeric token of 8+
// characters. Reference codes, confirmation IDs and store descriptors this
// long carry no grouping signal. The leading token is never dropped.
func stripTrailingOpaqueID(words []string) []string {
	if len(words) < 2 {
		return words
	}
	last := words[len(words)-1]
	if len(last) >= 8 && isAlnumWord(last) {
		return words[:len(words)-1]
	}
	return words
}

// trimTrailingOpaqueToken is the case-preserving variant used by
// CleanPayeeName. It only drops digit-bearing tokens so that legitimate
// trailing words ("Supercenter") survive for display.
func trimTrailingOpaqueToken(s string) string {
	words := strings.Fields(s)
	if len(words) < 2 {
		return s
	}
	last := words[len(words)-1]
	if len(last) >= 8 && isAlnumWord(last) && containsDigit(last) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func isAlphaWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func isAlnumWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
