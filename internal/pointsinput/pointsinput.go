// Package pointsinput gates the free-text points amount field. The buffer
// is sanitized on every edit so it only ever contains digits, and the
// add/use controls stay disabled until the buffer parses to a positive
// integer.
package pointsinput

import (
	"errors"
	"strconv"
	"strings"
)

var ErrNotSubmittable = errors.New("points amount is not a positive integer")

// Sanitize strips every non-digit rune from raw. Idempotent.
func Sanitize(raw string) string {
	var builder strings.Builder

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// IsSubmittable reports whether buffer is non-empty and parses to an
// integer greater than zero.
func IsSubmittable(buffer string) bool {
	amount, err := strconv.Atoi(buffer)

	return err == nil && amount > 0
}

// Amount parses a submittable buffer into the points amount.
func Amount(buffer string) (int, error) {
	if !IsSubmittable(buffer) {
		return 0, ErrNotSubmittable
	}

	return strconv.Atoi(buffer)
}
