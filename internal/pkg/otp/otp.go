// Package otp generates the numeric one-time codes emailed during signup.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of digits in a code.
const Length = 6

const (
	minCode = 100000
	maxCode = 999999
)

var span = big.NewInt(maxCode - minCode + 1)

// New returns a code drawn uniformly from [100000, 999999] using crypto/rand.
func New() (string, error) {
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("generate auth code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+minCode), nil
}

// WellFormed reports whether s has the shape of a code New could return.
func WellFormed(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s[0] != '0'
}
