package utils

import "strings"

// NormalizePlate uppercases a plate and strips everything that is not an
// ASCII letter or digit. The result is the dedup key for vehicles.
func NormalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(plate)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
