// Package extract recovers typed company records from the structural
// primitives of conference documents: page classification, per-strategy
// record extraction, and intra-document deduplication. Everything here
// is rule-based; each heuristic is a named predicate with named
// threshold constants so it stays independently testable.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// Company name length bounds for admission.
	minCompanyLen = 2
	maxCompanyLen = 90

	// Lines longer than this cannot be a label of any kind.
	maxLabelLen = 120

	// Lines shorter than this that contain a chrome keyword fragment
	// are treated as page chrome.
	shortChromeLen = 50

	// Person names have between 2 and 4 whitespace-separated tokens.
	minNameTokens = 2
	maxNameTokens = 4
)

// chromePhrases mark a line as page chrome regardless of length.
var chromePhrases = []string{
	"register now",
	"sponsorship",
	"sponsored by",
	"all rights reserved",
	"copyright",
	"©",
	"www.",
	".com/",
	"http://",
	"https://",
}

// chromeTokens reject short lines only (headers like "Day 1" or
// "AGENDA" share vocabulary with real content lines). Matching is
// token-wise, not substring: "Team of 4" must not trip on "am".
var chromeTokens = map[string]bool{
	"page":      true,
	"agenda":    true,
	"day":       true,
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"am":        true,
	"pm":        true,
}

// nameDenylist holds structural words that disqualify a token from being
// part of a person name.
var nameDenylist = map[string]bool{
	"agenda":   true,
	"day":      true,
	"session":  true,
	"panel":    true,
	"keynote":  true,
	"break":    true,
	"lunch":    true,
	"dinner":   true,
	"welcome":  true,
	"am":       true,
	"pm":       true,
	"speakers": true,
	"schedule": true,
}

// legalSuffixes lists common legal entity suffixes stripped during
// cleaning. Matching is exact-literal and case-insensitive; abbreviation
// variants beyond this list ("Intl." vs "International") do not unify.
var legalSuffixes = []string{
	", Inc.", ", Inc", " Inc.", " Inc",
	", LLC", " LLC", " L.L.C.",
	", Corp.", " Corp.", " Corp", " Corporation",
	", Ltd.", " Ltd.", " Ltd", " Limited",
	", Co.", " Co.",
	" LLP", " L.L.P.",
	" PLC",
	" GmbH",
}

var (
	bareIntRe   = regexp.MustCompile(`^\d+$`)
	clockTimeRe = regexp.MustCompile(`^\d{1,2}:\d{2}`)
	numericRe   = regexp.MustCompile(`^[\d.,%$\s]+$`)
	ampersandRe = regexp.MustCompile(`\s*&\s*`)
)

// IsHeaderFooter reports whether a line is page chrome: a known chrome
// phrase, a bare page number, a clock time, a line too long to be a
// label, or a short line carrying header vocabulary.
func IsHeaderFooter(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	if bareIntRe.MatchString(t) || clockTimeRe.MatchString(t) {
		return true
	}
	if len(t) > maxLabelLen {
		return true
	}

	lower := strings.ToLower(t)
	for _, phrase := range chromePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	if len(t) < shortChromeLen {
		for _, tok := range strings.Fields(lower) {
			if chromeTokens[strings.Trim(tok, ".,:;!?")] {
				return true
			}
		}
	}
	return false
}

// IsPersonName reports whether text looks like a person's name: 2-4
// tokens, no digits or commas, every token capitalized, and no token on
// the structural denylist.
func IsPersonName(text string) bool {
	tokens := strings.Fields(text)
	if len(tokens) < minNameTokens || len(tokens) > maxNameTokens {
		return false
	}
	for _, tok := range tokens {
		if !isNameToken(tok) {
			return false
		}
		if nameDenylist[strings.ToLower(strings.TrimRight(tok, "."))] {
			return false
		}
	}
	return true
}

// isNameToken checks the Capitalized shape: uppercase first letter, then
// letters, apostrophes, hyphens, or periods.
func isNameToken(tok string) bool {
	runes := []rune(tok)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if unicode.IsDigit(r) || r == ',' {
			return false
		}
		if !unicode.IsLetter(r) && r != '\'' && r != '-' && r != '.' && r != '’' {
			return false
		}
	}
	return true
}

// companySkipWords are structural labels that pass the shape checks but
// can never be company names.
var companySkipWords = map[string]bool{
	"page":       true,
	"agenda":     true,
	"schedule":   true,
	"conference": true,
	"workshop":   true,
	"keynote":    true,
	"session":    true,
	"break":      true,
	"lunch":      true,
	"dinner":     true,
	"welcome":    true,
	"opening":    true,
	"closing":    true,
	"panel":      true,
	"discussion": true,
	"q&a":        true,
	"networking": true,
	"speakers":   true,
	"attendees":  true,
}

// IsValidCompanyName reports whether text is admissible as a company
// name: within length bounds, not purely numeric or a percentage, and
// not a structural label.
func IsValidCompanyName(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < minCompanyLen || len(t) > maxCompanyLen {
		return false
	}
	if numericRe.MatchString(t) {
		return false
	}
	if companySkipWords[strings.ToLower(t)] {
		return false
	}
	return true
}

// StripNewTag removes a trailing "NEW" marker token from a line.
func StripNewTag(text string) string {
	t := strings.TrimSpace(text)
	if t == "NEW" {
		return ""
	}
	if strings.HasSuffix(t, " NEW") {
		return strings.TrimSpace(strings.TrimSuffix(t, " NEW"))
	}
	return t
}

// CleanCompanyName normalizes a raw company string into its display
// form: NEW marker removed, surrounding punctuation trimmed, ampersand
// spacing collapsed, whitespace collapsed, and a single legal suffix
// stripped.
func CleanCompanyName(name string) string {
	n := StripNewTag(name)
	n = strings.Trim(n, " \t-–—•|:;,.")
	n = ampersandRe.ReplaceAllString(n, " & ")
	n = CollapseWhitespace(n)

	lower := strings.ToLower(n)
	for _, suffix := range legalSuffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			n = strings.TrimSpace(n[:len(n)-len(suffix)])
			break
		}
	}
	return strings.TrimSpace(n)
}

// CanonicalKey computes the uniqueness key for a cleaned company name:
// lowercased with whitespace collapsed. Names are cleaned exactly once,
// at extraction; re-cleaning here would strip a second legal suffix and
// collapse distinct companies ("Acme Corp" into "Acme").
func CanonicalKey(name string) string {
	return strings.ToLower(CollapseWhitespace(name))
}
