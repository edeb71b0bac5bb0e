/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

// gvarHeaderSize is the size of the fixed gvar header. The glyph variation data offsets
// follow it directly.
const gvarHeaderSize = 20

// gvarHeader is the fixed part of the glyph variations table.
type gvarHeader struct {
	majorVersion                  uint16
	minorVersion                  uint16
	axisCount                     uint16
	sharedTupleCount              uint16
	sharedTuplesOffset            offset32
	glyphCount                    uint16
	flags                         uint16
	glyphVariationDataArrayOffset offset32
}

// Size returns size of `h` in bytes.
func (h *gvarHeader) Size() int64 {
	return gvarHeaderSize
}

// offsetFormat returns the format of the offsets array (flags bit 0).
func (h *gvarHeader) offsetFormat() OffsetFormat {
	return OffsetFormat(h.flags & 1)
}

func parseGvarHeader(r *byteReader) (*gvarHeader, error) {
	h := &gvarHeader{}

	err := r.read(&h.majorVersion, &h.minorVersion, &h.axisCount, &h.sharedTupleCount)
	if err != nil {
		return nil, err
	}

	err = r.read(&h.sharedTuplesOffset, &h.glyphCount, &h.flags, &h.glyphVariationDataArrayOffset)
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (h *gvarHeader) write(w *byteWriter) error {
	if h == nil {
		return errRequiredField
	}
	err := w.write(h.majorVersion, h.minorVersion, h.axisCount, h.sharedTupleCount)
	if err != nil {
		return err
	}
	return w.write(h.sharedTuplesOffset, h.glyphCount, h.flags, h.glyphVariationDataArrayOffset)
}
