// Package keys implements the key rules shared by the pool: keys are
// case-folded before any lookup or mutation and restricted to a small
// filesystem- and header-safe charset.
package keys

import (
	"fmt"
	"strings"
)

// ErrEmpty is returned for the empty key.
var ErrEmpty = fmt.Errorf("empty key")

// Normalize case-folds a key. Two keys differing only by case address the
// same entry.
func Normalize(key string) string {
	return strings.ToLower(key)
}

// Validate rejects keys outside the allowed charset: ASCII letters, digits,
// '.', '-' and ':'. Validation runs on the raw key; case is handled by
// Normalize, so uppercase letters are accepted here.
func Validate(key string) error {
	if key == "" {
		return ErrEmpty
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == ':':
		default:
			return fmt.Errorf("key %q: byte %q at %d outside [A-Za-z0-9.-:]", key, c, i)
		}
	}
	return nil
}
