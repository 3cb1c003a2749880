package utils

import (
	"strings"
)

// IsHexNumber validates a "0x"-prefixed hexadecimal number.
//
// A hex number must:
// - Have "0x" or "0X" prefix
// - Contain at least one hexadecimal digit after the prefix
// - Contain only hexadecimal digits (0-9, a-f, A-F) after prefix
//
// Parameters:
//   - s: The string to validate
//
// Returns:
//   - bool: true if s is a valid hex number, false otherwise
//
// Example:
//
//	IsHexNumber("0x10")  // true
//	IsHexNumber("0X1aF") // true
//	IsHexNumber("0x")    // false (no digits)
//	IsHexNumber("16")    // false (no 0x prefix)
func IsHexNumber(s string) bool {
	if !HasHexPrefix(s) {
		return false
	}

	digits := s[2:]
	if digits == "" {
		return false
	}

	for _, c := range digits {
		if !isHexDigit(c) {
			return false
		}
	}

	return true
}

// HasHexPrefix reports whether s starts with "0x" or "0X".
func HasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// isHexDigit checks if a rune is a valid hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
