// Package phone builds the candidate set used to match a shared contact
// against stored tutor numbers, which carry arbitrary formatting noise.
package phone

import "strings"

const (
	countryPrefix  = "65"
	nationalLength = 8
)

// Candidates normalizes a raw phone string into the representations worth
// matching against the store. The raw number is stripped to digits; a
// 65-prefixed number also yields its bare national form, and a bare
// national number also yields its prefixed form. Order is stable and the
// set contains no duplicates.
func Candidates(raw string) []string {
	digits := stripNonDigits(raw)
	if digits == "" {
		return nil
	}

	candidates := []string{digits}

	if strings.HasPrefix(digits, countryPrefix) && len(digits) > nationalLength {
		candidates = appendUnique(candidates, strings.TrimPrefix(digits, countryPrefix))
	}
	if len(digits) == nationalLength {
		candidates = appendUnique(candidates, countryPrefix+digits)
	}

	return candidates
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func appendUnique(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}
