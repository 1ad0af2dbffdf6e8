// Package converter renders a non-negative integer numeral in binary, octal,
// decimal and hexadecimal.
//
// Values are held in arbitrary precision, so numerals of any length convert
// exactly. Invalid input is reported through ConversionResult.IsValid rather
// than an error: the converter never fails and never panics.
package converter

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/doeshing/raqm/internal/domain"
)

var (
	// ErrEmptyInput is returned by Parse when nothing is left after removing whitespace.
	ErrEmptyInput = errors.New("empty numeral")
	// ErrUnsupportedRadix is returned by Parse for a radix outside 2, 8, 10, 16.
	ErrUnsupportedRadix = errors.New("unsupported radix")
)

// InvalidDigitError reports the first character outside the radix alphabet.
type InvalidDigitError struct {
	Digit    rune
	Position int
	Radix    domain.Radix
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("invalid digit %q at position %d for %s", e.Digit, e.Position, e.Radix)
}

// Convert validates input in the given radix and renders it in every radix.
func Convert(input string, radix domain.Radix) domain.ConversionResult {
	value, err := Parse(input, radix)
	if err != nil {
		return domain.ConversionResult{}
	}
	return Render(value)
}

// ConvertRequest is Convert for a domain.ConversionRequest.
func ConvertRequest(req domain.ConversionRequest) domain.ConversionResult {
	return Convert(req.Input, req.SourceRadix)
}

// Render formats a non-negative value in all four radixes.
func Render(value *big.Int) domain.ConversionResult {
	if value == nil || value.Sign() < 0 {
		return domain.ConversionResult{}
	}
	binary := value.Text(2)
	return domain.ConversionResult{
		Binary:      binary,
		Octal:       value.Text(8),
		Decimal:     value.Text(10),
		Hexadecimal: strings.ToUpper(value.Text(16)),
		BitCount:    len(binary),
		IsValid:     true,
	}
}

// Parse strips all whitespace from input and reads the remainder as a
// non-negative integer in radix. Every remaining character must belong to the
// radix alphabet; hexadecimal letters are accepted in either case.
func Parse(input string, radix domain.Radix) (*big.Int, error) {
	if !radix.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedRadix, int(radix))
	}
	digits := StripWhitespace(input)
	if digits == "" {
		return nil, ErrEmptyInput
	}
	for i, r := range digits {
		if !isDigit(r, radix) {
			return nil, &InvalidDigitError{Digit: r, Position: i, Radix: radix}
		}
	}
	value, ok := new(big.Int).SetString(digits, int(radix))
	if !ok {
		return nil, fmt.Errorf("parse %q as %s", digits, radix)
	}
	return value, nil
}

// StripWhitespace removes every whitespace character, including internal ones.
func StripWhitespace(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\uFEFF' {
			return -1
		}
		return r
	}, input)
}

func isDigit(r rune, radix domain.Radix) bool {
	switch {
	case r >= '0' && r <= '9':
		return int(r-'0') < int(radix)
	case r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		return radix == domain.RadixHexadecimal
	default:
		return false
	}
}
