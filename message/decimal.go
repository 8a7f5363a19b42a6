// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package message

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimal is a fixed-point decimal quantised to a declared number of
// fraction digits. It is the Go equivalent of the Python source's
// `Decimal(f"{value:.{digits}f}")` quantisation in validations.py.
//
// No decimal/money library appears anywhere in the retrieved example
// corpus, so Decimal is built on math/big.Rat; it implements
// encoding.TextMarshaler/TextUnmarshaler so both encoding/xml and
// encoding/json round-trip it without extra glue.
type Decimal struct {
	rat    *big.Rat
	digits int
}

// NewDecimal quantises value to the given number of fraction digits.
// value may be an int, int64, float64, string, or Decimal, mirroring
// validate_decimal's accepted input types.
func NewDecimal(value interface{}, digits int) (Decimal, error) {
	var rat *big.Rat

	switch v := value.(type) {
	case Decimal:
		rat = new(big.Rat).Set(v.rat)
	case int:
		rat = new(big.Rat).SetInt64(int64(v))
	case int64:
		rat = new(big.Rat).SetInt64(v)
	case float64:
		rat = new(big.Rat).SetFloat64(v)
		if rat == nil {
			return Decimal{}, fmt.Errorf("value must be a finite number, got %v", v)
		}
	case string:
		r, ok := new(big.Rat).SetString(strings.TrimSpace(v))
		if !ok {
			return Decimal{}, fmt.Errorf("value must be a valid numeric value, not '%s'", v)
		}
		rat = r
	default:
		return Decimal{}, fmt.Errorf("value must be a numeric type, not %T", value)
	}

	return quantise(rat, digits), nil
}

func quantise(rat *big.Rat, digits int) Decimal {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	scaled := new(big.Rat).Mul(rat, new(big.Rat).SetInt(scale))

	num := scaled.Num()
	den := scaled.Denom()
	q := new(big.Int)
	rem := new(big.Int)
	q.QuoRem(num, den, rem)
	// round-half-away-from-zero
	rem2 := new(big.Int).Mul(rem, big.NewInt(2))
	rem2.Abs(rem2)
	if rem2.Cmp(den) >= 0 {
		if num.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}

	result := new(big.Rat).SetFrac(q, scale)
	return Decimal{rat: result, digits: digits}
}

// Digits returns the number of fraction digits this value is quantised to.
func (d Decimal) Digits() int { return d.digits }

// Float64 returns the nearest float64 approximation.
func (d Decimal) Float64() float64 {
	if d.rat == nil {
		return 0
	}
	f, _ := d.rat.Float64()
	return f
}

// String renders the value with exactly Digits() fraction digits.
func (d Decimal) String() string {
	if d.rat == nil {
		d.rat = new(big.Rat)
	}
	f := new(big.Float).SetRat(d.rat)
	return f.Text('f', d.digits)
}

// MarshalText implements encoding.TextMarshaler, used transparently by
// both encoding/xml attribute/element encoding and encoding/json.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The digit count is
// inferred from the text itself (the number of digits after the '.').
func (d *Decimal) UnmarshalText(text []byte) error {
	s := string(text)
	digits := 0
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		digits = len(s) - idx - 1
	}
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return fmt.Errorf("invalid decimal text %q", s)
	}
	*d = Decimal{rat: rat, digits: digits}
	return nil
}

// Equal reports whether two Decimals represent the same quantity,
// regardless of digit count.
func (d Decimal) Equal(other Decimal) bool {
	if d.rat == nil || other.rat == nil {
		return d.rat == other.rat
	}
	return d.rat.Cmp(other.rat) == 0
}

// InRange reports whether d falls within [lo, hi] inclusive, both given as
// plain decimal strings.
func (d Decimal) InRange(lo, hi string) (bool, error) {
	lr, ok := new(big.Rat).SetString(lo)
	if !ok {
		return false, fmt.Errorf("invalid lower bound %q", lo)
	}
	hr, ok := new(big.Rat).SetString(hi)
	if !ok {
		return false, fmt.Errorf("invalid upper bound %q", hi)
	}
	return d.rat.Cmp(lr) >= 0 && d.rat.Cmp(hr) <= 0, nil
}
