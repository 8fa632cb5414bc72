package numberutils

import "strconv"

// ToFloat64WithError converts the given string to a float64 and returns any error
// that occurred during conversion.
func ToFloat64WithError(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// FormatFloat returns the minimal decimal string form of the given float64.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IsFloatInRange checks if the given number is within the specified range (inclusive).
func IsFloatInRange(num, min, max float64) bool {
	return num >= min && num <= max
}
