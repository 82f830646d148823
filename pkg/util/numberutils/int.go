package numberutils

import (
	"strconv"
)

// ToIntWithError converts the given string to an integer and returns any error that occurred during conversion.
func ToIntWithError(str string) (int, error) {
	return strconv.Atoi(str)
}

// ToUintWithError converts a base-10 string of digits to a uint.
// Signs, blanks and values overflowing uint are rejected.
func ToUintWithError(str string) (uint, error) {
	value, err := strconv.ParseUint(str, 10, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

// IsIntInRange checks if the given number is within the specified range (inclusive).
func IsIntInRange(num, min, max int) bool {
	return num >= min && num <= max
}
