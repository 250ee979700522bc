// Package phone normalizes user-supplied phone numbers into the canonical
// national digit string used as the account login identifier.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const region = "RU"

// Normalize turns free-form phone text into a canonical digit string
// ("79161234567"). It accepts the common Russian spellings: a leading 8
// (trunk prefix) is replaced with 7, a bare 10-digit subscriber number gets
// the 7 country code prepended. The result is validated against the Russian
// numbering plan; anything that does not parse as a valid RU number is
// rejected.
//
// Normalize is pure: same input, same output, no side effects.
func Normalize(raw string) (string, bool) {
	digits := stripNonDigits(raw)
	if digits == "" {
		return "", false
	}

	if digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	if len(digits) == 10 {
		digits = "7" + digits
	}

	num, err := phonenumbers.Parse("+"+digits, region)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumberForRegion(num, region) {
		return "", false
	}

	// E.164 without the leading '+'.
	return phonenumbers.Format(num, phonenumbers.E164)[1:], true
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
