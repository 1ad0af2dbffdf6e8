package domain

import (
	"fmt"
	"strings"
)

// Radix is the closed set of numeral systems the converter understands.
type Radix int

const (
	RadixBinary      Radix = 2
	RadixOctal       Radix = 8
	RadixDecimal     Radix = 10
	RadixHexadecimal Radix = 16
)

// Radixes lists every supported radix in ascending order.
func Radixes() []Radix {
	return []Radix{RadixBinary, RadixOctal, RadixDecimal, RadixHexadecimal}
}

// Valid reports whether r is one of the supported radixes.
func (r Radix) Valid() bool {
	switch r {
	case RadixBinary, RadixOctal, RadixDecimal, RadixHexadecimal:
		return true
	default:
		return false
	}
}

// String returns the platform token used on the wire ("binary", "octal", ...).
func (r Radix) String() string {
	switch r {
	case RadixBinary:
		return "binary"
	case RadixOctal:
		return "octal"
	case RadixDecimal:
		return "decimal"
	case RadixHexadecimal:
		return "hexadecimal"
	default:
		return fmt.Sprintf("radix(%d)", int(r))
	}
}

// ArabicName is the name of the numeral system as shown in reports.
func (r Radix) ArabicName() string {
	switch r {
	case RadixBinary:
		return "الثنائي"
	case RadixOctal:
		return "الثماني"
	case RadixHexadecimal:
		return "السادس عشر"
	default:
		return "العشري"
	}
}

// MarshalText encodes the radix as its platform token.
func (r Radix) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unsupported radix %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText accepts anything ParseRadix accepts.
func (r *Radix) UnmarshalText(text []byte) error {
	parsed, err := ParseRadix(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRadix resolves a radix from a platform token ("hexadecimal"), a short
// alias ("hex") or its numeric form ("16"). Matching is case-insensitive.
func ParseRadix(raw string) (Radix, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "2", "bin", "binary":
		return RadixBinary, nil
	case "8", "oct", "octal":
		return RadixOctal, nil
	case "10", "dec", "decimal":
		return RadixDecimal, nil
	case "16", "hex", "hexadecimal":
		return RadixHexadecimal, nil
	default:
		return 0, fmt.Errorf("unsupported numeral system %q", raw)
	}
}

// RadixFromPlatform maps the endpoint's platform field to a radix. Only the
// four literal tokens are recognised; anything else falls back to decimal.
func RadixFromPlatform(platform string) Radix {
	switch platform {
	case "binary":
		return RadixBinary
	case "octal":
		return RadixOctal
	case "hexadecimal":
		return RadixHexadecimal
	default:
		return RadixDecimal
	}
}
