package money

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned when a decimal string cannot be parsed as an amount.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// maxDecimalLen bounds the accepted input so hostile strings cannot blow up big.Rat parsing.
const maxDecimalLen = 24

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// Values are immutable: every operation returns a new instance.
type Money struct {
	rat *big.Rat
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// New creates a Money instance from numerator and denominator.
// Example: New(25990, 100) represents 259.90
func New(numerator, denominator int64) (*Money, error) {
	if denominator <= 0 {
		return nil, fmt.Errorf("denominator must be positive, got %d", denominator)
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// FromCents creates a Money instance from an integer number of cents.
func FromCents(cents int64) *Money {
	return &Money{rat: big.NewRat(cents, 100)}
}

// FromUnits creates a Money instance from whole currency units.
func FromUnits(units int64) *Money {
	return &Money{rat: big.NewRat(units, 1)}
}

// FromRat creates a Money instance from a big.Rat. A nil rat yields zero.
func FromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// Parse reads a plain decimal string such as "259.90" or "10000".
// Exponents and fractions are rejected.
func Parse(s string) (*Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxDecimalLen || !isPlainDecimal(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return &Money{rat: rat}, nil
}

// MustParse is Parse for constants and tests; it panics on malformed input.
func MustParse(s string) *Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func isPlainDecimal(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// Rat returns a copy of the underlying rational.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyByRat multiplies this Money value by a rational factor.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// MultiplyByInt multiplies this Money value by an integer quantity.
func (m *Money) MultiplyByInt(n int64) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, new(big.Rat).SetInt64(n))}
}

// DivideByInt splits the amount into n equal parts.
func (m *Money) DivideByInt(n int64) (*Money, error) {
	if n == 0 {
		return nil, fmt.Errorf("cannot divide by zero")
	}
	return &Money{rat: new(big.Rat).Quo(m.rat, new(big.Rat).SetInt64(n))}, nil
}

// Ratio returns m/other as a rational, or zero when other is zero.
func (m *Money) Ratio(other *Money) *big.Rat {
	if other.rat.Sign() == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).Quo(m.rat, other.rat)
}

// Round rounds to the given number of decimal places, halves away from zero.
func (m *Money) Round(places int) *Money {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	scaled := new(big.Rat).Mul(m.rat, new(big.Rat).SetInt(scale))

	num := new(big.Int).Abs(scaled.Num())
	den := scaled.Denom()

	// floor((2*num + den) / (2*den)) == round-half-up of num/den
	q := new(big.Int).Lsh(num, 1)
	q.Add(q, den)
	q.Quo(q, new(big.Int).Lsh(den, 1))
	if scaled.Sign() < 0 {
		q.Neg(q)
	}

	return &Money{rat: new(big.Rat).SetFrac(q, scale)}
}

// RoundCents rounds to two decimal places.
func (m *Money) RoundCents() *Money {
	return m.Round(2)
}

// Cents returns the amount in cents after rounding.
func (m *Money) Cents() int64 {
	r := new(big.Rat).Mul(m.RoundCents().rat, big.NewRat(100, 1))
	return r.Num().Int64()
}

// Cmp compares two amounts and returns -1, 0 or +1.
func (m *Money) Cmp(other *Money) int {
	return m.rat.Cmp(other.rat)
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Max returns the larger of two amounts.
func Max(a, b *Money) *Money {
	if a.LessThan(b) {
		return b
	}
	return a
}

// Min returns the smaller of two amounts.
func Min(a, b *Money) *Money {
	if a.GreaterThan(b) {
		return b
	}
	return a
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns the amount with exactly two decimals, e.g. "233.91".
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// DecimalString returns the shortest decimal form of the cent-rounded amount:
// "10000", "199.9", "19.95".
func (m *Money) DecimalString() string {
	s := m.RoundCents().rat.FloatString(2)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// MarshalJSON renders the amount as a JSON number with two decimals.
func (m *Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	m.rat = parsed.rat
	return nil
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
