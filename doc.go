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

// Package numeral implements an incremental accumulator for numeric
// literals.
//
// The package does not scan text. A lexer that already knows which
// characters are digits, signs, radix points, and exponent markers feeds
// the corresponding events into an [Accumulator], one digit at a time, and
// calls [Accumulator.Finish] to obtain either an exact signed 64-bit
// integer or a float64. Any radix from 2 to 255 is supported; it is the
// lexer's job to keep digit values below the base.
//
// # Integer Promotion
//
// Accumulation starts in integer mode and stays exact for as long as the
// magnitude fits in 64 bits. The digit that would overflow promotes the
// accumulator to floating-point, permanently; [Accumulator.Finish] also
// promotes when a radix point or an exponent was seen, or when a positive
// magnitude exceeds [math.MaxInt64]. A negative magnitude of exactly 2⁶³
// is still exact: it finishes as [math.MinInt64] on the integer path.
//
// # Saturation
//
// Nothing in this package fails, and no operation returns an error. Digits
// past [MaxDigits] and exponent digits past [MaxExp] are dropped, and
// magnitudes beyond float64 range resolve to ±Inf through ordinary IEEE
// arithmetic.
package numeral
