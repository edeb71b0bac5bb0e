/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// GlyphName is a representation of a glyph name, e.g. from Adobe's glyph list.
type GlyphName string

// GlyphIndex or Glyph ID (GID) represent each glyph within a font.
type GlyphIndex uint16

/*
Types in the gvar table:
https://docs.microsoft.com/en-us/typography/opentype/spec/otff

Data Type	Description
--------------------------------------------------------
uint8	  8-bit unsigned integer.
int8	  8-bit signed integer.
uint16	  16-bit unsigned integer.
int16	  16-bit signed integer.
uint32	  32-bit unsigned integer.
F2DOT14	  16-bit signed fixed number with the low 14 bits of fraction (2.14).
Tag	      Array of four uint8s (length = 32 bits) used to identify a table,
          design-variation axis, script, language system, feature, or baseline
Offset16  Short offset to a table, same as uint16, NULL offset = 0x0000
Offset32  Long offset to a table, same as uint32, NULL offset = 0x00000000
*/

type offset16 uint16
type offset32 uint32

// F2Dot14 is a 16-bit signed fixed number with the low 14 bits of fraction (2.14).
// Normalized axis coordinates are stored in this format.
type F2Dot14 int16

const f2dot14Scale = 1 << 14

// Range of values representable as F2Dot14.
const (
	MinCoordinate = float64(math.MinInt16) / f2dot14Scale // -2.0
	MaxCoordinate = float64(math.MaxInt16) / f2dot14Scale // 1.99993896484375
)

// NewF2Dot14 converts `x` to F2Dot14, rounding to the nearest value (halves away from
// zero). Values outside the representable range are clamped.
func NewF2Dot14(x float64) F2Dot14 {
	v := math.Round(x * f2dot14Scale)
	switch {
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= math.MinInt16:
		return math.MinInt16
	case math.IsNaN(v):
		return 0
	}
	return F2Dot14(v)
}

// ParseF2Dot14 reads a big endian F2Dot14 from the first two bytes of `b`.
func ParseF2Dot14(b []byte) (F2Dot14, error) {
	if len(b) < 2 {
		return 0, fmt.Errorf("%w: F2Dot14 needs 2 bytes, got %d", ErrFormat, len(b))
	}
	return F2Dot14(binary.BigEndian.Uint16(b)), nil
}

// Float64 returns `f` as a float64.
func (f F2Dot14) Float64() float64 {
	return float64(f) / f2dot14Scale
}

// Bytes returns the big endian encoding of `f`.
func (f F2Dot14) Bytes() []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(f))
	return b
}

// isRepresentable reports whether `x` lies within the F2Dot14 range. NaN is not.
func isRepresentable(x float64) bool {
	return x >= MinCoordinate && x <= MaxCoordinate
}
