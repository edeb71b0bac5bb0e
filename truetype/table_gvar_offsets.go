/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// OffsetFormat selects the representation of the glyphVariationDataOffsets array,
// bit 0 of the gvar flags.
type OffsetFormat uint16

const (
	// OffsetsShort stores offsets divided by 2 as Offset16.
	OffsetsShort OffsetFormat = 0
	// OffsetsLong stores offsets as Offset32.
	OffsetsLong OffsetFormat = 1
)

func (f OffsetFormat) String() string {
	switch f {
	case OffsetsShort:
		return "short"
	case OffsetsLong:
		return "long"
	}
	return fmt.Sprintf("OffsetFormat(%d)", uint16(f))
}

// CompileOffsets encodes the glyph variation data offsets (glyphCount+1 entries, the
// last being the total data length). The short format is chosen when every offset is
// even and fits 16 bits after halving.
func CompileOffsets(offsets []int) ([]byte, OffsetFormat, error) {
	if len(offsets) == 0 {
		logrus.Debug("No offsets")
		return nil, OffsetsShort, fmt.Errorf("%w: offsets need at least one entry", ErrRange)
	}

	short := true
	for i, off := range offsets {
		if off < 0 || uint64(off) > 0xFFFFFFFF {
			logrus.Debugf("Invalid offset: %d", off)
			return nil, OffsetsShort, fmt.Errorf("%w: offset %d not representable", ErrRange, off)
		}
		if i > 0 && off < offsets[i-1] {
			logrus.Debugf("Invalid offset order: %d < %d", off, offsets[i-1])
			return nil, OffsetsShort, fmt.Errorf("%w: offset %d after %d", ErrRange, off, offsets[i-1])
		}
		if off%2 != 0 || off/2 > 0xFFFF {
			short = false
		}
	}

	w := newByteWriter()
	if short {
		offsetsShort := make([]offset16, len(offsets))
		for i, off := range offsets {
			offsetsShort[i] = offset16(off / 2)
		}
		err := w.writeSlice(offsetsShort)
		return w.bytes(), OffsetsShort, err
	}

	offsetsLong := make([]offset32, len(offsets))
	for i, off := range offsets {
		offsetsLong[i] = offset32(off)
	}
	err := w.writeSlice(offsetsLong)
	return w.bytes(), OffsetsLong, err
}

// DecompileOffsets reads glyphCount+1 offsets in `format` from `data`.
func DecompileOffsets(data []byte, format OffsetFormat, glyphCount int) ([]int, error) {
	if glyphCount < 0 {
		return nil, fmt.Errorf("%w: negative glyph count %d", ErrRange, glyphCount)
	}
	size, err := offsetsSize(format, glyphCount)
	if err != nil {
		return nil, err
	}
	if len(data) < size {
		logrus.Debugf("Offsets truncated: %d < %d", len(data), size)
		return nil, fmt.Errorf("%w: %d offsets need %d bytes, have %d", ErrFormat, glyphCount+1, size, len(data))
	}

	r := newByteReader(data)
	offsets := make([]int, 0, glyphCount+1)
	if format == OffsetsShort {
		var offsetsShort []offset16
		if err := r.readSlice(&offsetsShort, glyphCount+1); err != nil {
			return nil, err
		}
		for _, off := range offsetsShort {
			offsets = append(offsets, 2*int(off))
		}
	} else {
		var offsetsLong []offset32
		if err := r.readSlice(&offsetsLong, glyphCount+1); err != nil {
			return nil, err
		}
		for _, off := range offsetsLong {
			offsets = append(offsets, int(off))
		}
	}

	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			logrus.Debugf("Invalid offset order at %d: %d < %d", i, offsets[i], offsets[i-1])
			return nil, fmt.Errorf("%w: offset %d of glyph %d before %d", ErrFormat, offsets[i], i, offsets[i-1])
		}
	}
	return offsets, nil
}

// offsetsSize returns the byte size of glyphCount+1 offsets in `format`.
func offsetsSize(format OffsetFormat, glyphCount int) (int, error) {
	switch format {
	case OffsetsShort:
		return 2 * (glyphCount + 1), nil
	case OffsetsLong:
		return 4 * (glyphCount + 1), nil
	}
	logrus.Debugf("Invalid offset format: %d", format)
	return 0, fmt.Errorf("%w: unknown offset format %d", ErrFormat, uint16(format))
}
