package pricing

import (
	"fmt"
	"strings"
)

// NormalizePostalCode accepts a Brazilian CEP written as "NNNNN-NNN" or as
// eight bare digits and returns it in the dashed form.
func NormalizePostalCode(s string) (string, error) {
	s = strings.TrimSpace(s)

	var digits string
	switch {
	case len(s) == 8 && allDigits(s):
		digits = s
	case len(s) == 9 && s[5] == '-' && allDigits(s[:5]) && allDigits(s[6:]):
		digits = s[:5] + s[6:]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPostalCode, s)
	}
	return digits[:5] + "-" + digits[5:], nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
