package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

// IsLuhn reports whether s is a Luhn-valid number. Bank reference numbers
// carry a Luhn check digit.
func IsLuhn(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}
