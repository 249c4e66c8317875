package bignum

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidFormat is returned when a decimal string cannot be parsed as an integer.
	ErrInvalidFormat = errors.New("bignum: invalid integer format")

	// ErrDivisionByZero is returned by division, modulo and fraction construction with a zero divisor.
	ErrDivisionByZero = errors.New("bignum: division by zero")
)
