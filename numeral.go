// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package numeral

import (
	"fmt"
	"math"
)

// maxMag is the magnitude of the most negative int64. It is the largest
// magnitude the integer accumulator may hold; only a negative number can
// actually use all of it.
const maxMag uint64 = 1 << 63

const (
	// MaxDigits is the most integer and fractional digits an [Accumulator]
	// accepts. Digits past it are dropped.
	MaxDigits = math.MaxInt16

	// MaxExp is the exponent accumulation cutoff, the negation of the
	// smallest base-10 exponent representable in a float64. Exponent digits
	// are dropped once the accumulated exponent reaches it.
	MaxExp = 308
)

// Kind identifies which representation a finished [Accumulator] holds.
type Kind byte

const (
	// Int is an exact signed 64-bit integer result.
	Int Kind = iota
	// Float is a double-precision floating-point result.
	Float
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("numeral.Kind(%d)", byte(k))
	}
}

// Accumulator builds a number out of digit events produced by an external
// lexer.
//
// Construct one with [New], or recycle one with [Accumulator.Reset]. Digits
// within the integer/fraction run must arrive left to right, and likewise
// exponent digits; every other event may arrive in any order relative to
// the digits. [Accumulator.Finish] freezes the result, after which only
// the accessors are meaningful.
//
// An Accumulator performs no validation of digit values: the lexer
// guarantees every digit it feeds is in [0, base). See the package
// documentation for the promotion and saturation rules.
//
// Accumulators share no state with each other, but a single instance must
// not be mutated from more than one goroutine.
type Accumulator struct {
	mant  uint64  // Unsigned magnitude while the kind is Int.
	fmant float64 // Magnitude (pre-sign, pre-exponent) once the kind is Float.

	base   byte
	digits int16 // Digits accepted into the integer+fraction run.
	radix  int16 // Value of digits when the radix point was set, or -1.
	exp    int32 // Accumulated exponent magnitude.

	neg     bool
	expNeg  bool
	isFloat bool
	hasExp  bool
	wasInt  bool // The value began as an integer and was promoted. Diagnostic only; see Format.
}

// New returns an Accumulator ready to accept a literal in the given base.
// The base must be in [2, 255]; behavior for any other base is undefined.
func New(base byte) *Accumulator {
	a := new(Accumulator)
	a.Reset(base)
	return a
}

// Reset restores a to its initial state so it can accumulate the next
// literal. Any previous result is discarded.
func (a *Accumulator) Reset(base byte) {
	*a = Accumulator{base: base, radix: -1}
}

// Base returns the radix the accumulator was initialized with.
func (a *Accumulator) Base() byte {
	return a.base
}

// Kind returns which representation currently holds the value: the
// accumulation mode before [Accumulator.Finish], the frozen result kind
// after.
func (a *Accumulator) Kind() Kind {
	if a.isFloat {
		return Float
	}
	return Int
}

// AddDigit appends the next digit of the integer/fraction run.
//
// Accumulation is exact for as long as the magnitude fits in 64 bits. The
// digit that would overflow promotes the accumulator to floating-point at
// exactly that step, so the largest representable magnitudes stay
// bit-exact; after that, digits accumulate in double precision. Digits
// past [MaxDigits] are dropped.
func (a *Accumulator) AddDigit(digit byte) {
	if a.digits >= MaxDigits {
		return
	}

	if !a.isFloat && a.mant > maxMag/uint64(a.base) {
		// One more multiply would overflow the magnitude outright.
		a.promote()
	}

	if !a.isFloat {
		a.mant *= uint64(a.base)
		if a.mant > maxMag-uint64(digit) {
			// The add lands past what a negated int64 can hold; finish
			// this digit in floating-point.
			a.promote()
			a.fmant += float64(digit)
		} else {
			a.mant += uint64(digit)
		}
	} else {
		a.fmant = a.fmant*float64(a.base) + float64(digit)
	}

	a.digits++
}

// AddExpDigit appends the next exponent digit.
//
// The exponent saturates at [MaxExp]; digits past the cutoff are dropped.
// An exponent digit does not promote the mantissa by itself, that is
// deferred to [Accumulator.Finish].
func (a *Accumulator) AddExpDigit(digit byte) {
	if a.exp < MaxExp {
		a.exp = a.exp*int32(a.base) + int32(digit)
		a.hasExp = true
	}
}

// SetRadixPoint marks the current position in the digit run as the radix
// point: digits added afterward are fractional. Calling it again moves
// the point.
func (a *Accumulator) SetRadixPoint() {
	a.radix = a.digits
}

// SetNeg records the sign of the number. It may be called at any point
// before Finish, before or after the digits it applies to.
func (a *Accumulator) SetNeg(neg bool) {
	a.neg = neg
}

// SetExpNeg records the sign of the exponent. It may be called at any
// point before Finish.
func (a *Accumulator) SetExpNeg(neg bool) {
	a.expNeg = neg
}

// Finish computes the final value and returns which representation holds
// it: [Int] means [Accumulator.Int] returns the exact value, [Float] means
// [Accumulator.Float] does.
//
// A positive magnitude larger than [math.MaxInt64], a radix point, or an
// exponent forces a float result; a run that stayed in integer mode
// otherwise produces an exact integer. A magnitude of exactly 2⁶³ with the
// sign set finishes as [math.MinInt64]. Magnitudes beyond float64 range
// saturate to ±Inf.
//
// Finish is terminal: no mutating call is defined afterward. Reset the
// accumulator to parse another literal.
func (a *Accumulator) Finish() Kind {
	// A positive integer tops out one short of the negative magnitude, so
	// anything past math.MaxInt64 without the sign flag must be a float.
	if (!a.neg && a.mant > maxMag-1) || a.hasExp || a.radix >= 0 {
		a.promote()
	}

	if !a.isFloat {
		if a.neg {
			// Wrapping negation of the unsigned magnitude, so that a
			// magnitude of exactly 2⁶³ lands on math.MinInt64 instead of
			// overflowing.
			a.mant = -a.mant
		}
		return Int
	}

	n := a.exp
	if a.expNeg {
		n = -n
	}
	if a.radix >= 0 {
		// Fractional digits shift the radix point back left.
		n -= int32(a.digits - a.radix)
	}
	if n < 0 {
		a.expNeg = true
		n = -n
	}

	// base^n by square-and-multiply. This is the only rounding introduced
	// beyond the digit accumulation itself.
	d := float64(a.base)
	e := 1.0
	for ; n > 0; n >>= 1 {
		if n&1 != 0 {
			e *= d
		}
		d *= d
	}

	if a.neg {
		a.fmant = -a.fmant
	}
	if a.expNeg {
		a.fmant /= e
	} else {
		a.fmant *= e
	}
	return Float
}

// Int returns the finished value as a signed 64-bit integer and reports
// whether it is exact. A float result is truncated toward zero.
func (a *Accumulator) Int() (v int64, exact bool) {
	if a.isFloat {
		n := int64(a.fmant)
		return n, a.fmant == float64(n)
	}
	return int64(a.mant), true
}

// Float returns the finished value as a float64 and reports whether it is
// exact. An integer result converts exactly whenever it fits in a float64
// mantissa.
func (a *Accumulator) Float() (v float64, exact bool) {
	if a.isFloat {
		return a.fmant, true
	}
	n := int64(a.mant)
	f := float64(n)
	return f, int64(f) == n
}

// promote switches from exact integer accumulation to floating-point,
// carrying the magnitude over. Promotion is one-way.
func (a *Accumulator) promote() {
	if !a.isFloat {
		a.isFloat = true
		a.wasInt = true
		a.fmant = float64(a.mant)
	}
}

// Format implements [fmt.Formatter].
//
// The rendering is diagnostic and not part of any compatibility contract;
// it is the one place the promoted-from-integer flag is visible.
func (a *Accumulator) Format(s fmt.State, _ rune) {
	fmt.Fprintf(s, "{base: %d, kind: %v", a.base, a.Kind())
	if a.isFloat {
		fmt.Fprintf(s, ", mant: %g", a.fmant)
	} else {
		fmt.Fprintf(s, ", mant: %d", a.mant)
	}
	if a.neg {
		fmt.Fprint(s, ", neg")
	}
	if a.radix >= 0 {
		fmt.Fprintf(s, ", radix: %d", a.radix)
	}
	if a.hasExp {
		fmt.Fprintf(s, ", exp: %d", a.exp)
		if a.expNeg {
			fmt.Fprint(s, " (neg)")
		}
	}
	if a.wasInt {
		fmt.Fprint(s, ", promoted")
	}
	fmt.Fprintf(s, ", digits: %d}", a.digits)
}
