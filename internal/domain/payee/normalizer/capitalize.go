package normalizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Abbreviations always rendered uppercase regardless of input casing.
var knownAbbreviations = map[string]bool{
	"llc": true, "inc": true, "ltd": true, "corp": true,
	"co": true, "usa": true, "atm": true, "pos": true,
}

var longDigitRunPattern = regexp.MustCompile(`\b\d{4,}\b`)

// SmartCapitalize turns a chosen raw payee string into a display name. It
// strips residual store numbers, long digit runs, dollar amounts and
// trailing location suffixes, then title-cases ordinary words while
// preserving acronyms and intentional mixed casing.
//
//	SmartCapitalize("WALMART #1234 DALLAS TX") == "Walmart"
//	SmartCapitalize("MidAmerican")             == "MidAmerican"
//	SmartCapitalize("IBMC")                    == "IBMC"
func SmartCapitalize(raw string) string {
	s := storeNumberPattern.ReplaceAllString(raw, " ")
	s = dollarAmountPattern.ReplaceAllString(s, " ")
	s = longDigitRunPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	words := strings.Fields(s)
	words = stripTrailingLocation(words)

	for i, word := range words {
		words[i] = capitalizeWord(word)
	}
	return strings.Join(words, " ")
}

func capitalizeWord(word string) string {
	runes := []rune(word)
	switch {
	case isAllUpper(word) && len(runes) >= 2 && len(runes) <= 5:
		// Short all-caps token: almost certainly an acronym.
		return word
	case hasIntentionalMixedCase(runes):
		// "MidAmerican", "iPhone" and similar brand casing.
		return word
	case knownAbbreviations[strings.ToLower(word)]:
		return strings.ToUpper(word)
	case isAllUpper(word) && len(runes) > 5:
		return titleCaseWord(runes)
	case isAllLower(word):
		return titleCaseWord(runes)
	default:
		return word
	}
}

// hasIntentionalMixedCase reports whether an uppercase letter follows a
// lowercase one anywhere in the word.
func hasIntentionalMixedCase(runes []rune) bool {
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			return true
		}
	}
	return false
}

func titleCaseWord(runes []rune) string {
	if len(runes) == 0 {
		return ""
	}
	out := make([]rune, len(runes))
	out[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		out[i] = unicode.ToLower(runes[i])
	}
	return string(out)
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isAllLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
