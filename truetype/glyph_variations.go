/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Tuple variation store header flags.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otvarcommonformats#tuple-variation-store-header
const (
	tuplesSharePointNumbers = 0x8000
	tupleCountMask          = 0x0FFF
)

// Tuple variation header flags (tupleIndex field).
const (
	embeddedPeakTuple   = 0x8000
	intermediateRegion  = 0x4000
	privatePointNumbers = 0x2000
	tupleIndexMask      = 0x0FFF
)

// CompileGlyph serializes the tuple variations of one glyph with `numPoints` points
// (including phantom points) as GlyphVariationData. Variations without impact are
// dropped; if none remain the result is empty. Peaks found in `sharedIndex` are
// referenced instead of embedded. The result is padded to an even length.
func CompileGlyph(variations []*TupleVariation, numPoints int, axisTags []AxisTag,
	sharedIndex SharedTupleIndex, opts *Options) ([]byte, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return compileGlyph(variations, numPoints, axisTags, sharedIndex, o)
}

func compileGlyph(variations []*TupleVariation, numPoints int, axisTags []AxisTag,
	sharedIndex SharedTupleIndex, opts Options) ([]byte, error) {
	var vars []*TupleVariation
	for _, tv := range variations {
		if tv != nil && tv.HasImpact() {
			vars = append(vars, tv)
		}
	}
	if len(vars) == 0 {
		return nil, nil
	}
	if len(vars) > tupleCountMask {
		logrus.Debugf("Too many tuple variations: %d", len(vars))
		return nil, fmt.Errorf("%w: %d tuple variations exceed %d", ErrRange, len(vars), tupleCountMask)
	}

	for _, tv := range vars {
		if len(tv.Deltas) != numPoints {
			logrus.Debugf("Point count mismatch: %d != %d", len(tv.Deltas), numPoints)
			return nil, fmt.Errorf("%w: tuple variation has %d deltas, glyph has %d points",
				ErrStructure, len(tv.Deltas), numPoints)
		}
		if err := tv.checkAxes(axisTags); err != nil {
			return nil, err
		}
	}

	// Candidate shared points: every point with an explicit delta in any variation.
	// A variation can only use them if it has deltas for exactly these points.
	var sharedPoints []int
	if !opts.DisableSharedPoints {
		used := make([]bool, numPoints)
		for _, tv := range vars {
			for _, p := range tv.usedPoints() {
				used[p] = true
			}
		}
		for p, u := range used {
			if u {
				sharedPoints = append(sharedPoints, p)
			}
		}
	}

	type record struct{ header, aux []byte }
	private := make([]record, len(vars))
	shared := make([]record, len(vars))
	privateSize, sharedSize := 0, 0
	someShare := false
	for i, tv := range vars {
		header, aux, err := tv.compile(axisTags, sharedIndex, nil, numPoints, opts)
		if err != nil {
			return nil, err
		}
		private[i] = record{header, aux}
		shared[i] = private[i]
		if sharedPoints != nil {
			sHeader, sAux, err := tv.compile(axisTags, sharedIndex, sharedPoints, numPoints, opts)
			if err != nil {
				return nil, err
			}
			if len(sHeader)+len(sAux) < len(header)+len(aux) {
				shared[i] = record{sHeader, sAux}
				someShare = true
			}
		}
		privateSize += len(private[i].header) + len(private[i].aux)
		sharedSize += len(shared[i].header) + len(shared[i].aux)
	}

	// The shared point numbers are stored once and must pay for themselves.
	var packedShared []byte
	records := private
	if someShare {
		var err error
		packedShared, err = compilePoints(sharedPoints, numPoints)
		if err != nil {
			return nil, err
		}
		if sharedSize+len(packedShared) < privateSize {
			records = shared
		} else {
			someShare = false
			packedShared = nil
		}
	}

	tuples := newByteWriter()
	data := newByteWriter()
	for _, rec := range records {
		tuples.writeBytes(rec.header)
		data.writeBytes(rec.aux)
	}

	offsetToData := 4 + tuples.bufferedLen()
	if offsetToData > 0xFFFF {
		logrus.Debugf("Tuple headers too large: %d", offsetToData)
		return nil, fmt.Errorf("%w: tuple variation headers of %d bytes", ErrRange, offsetToData)
	}

	count := uint16(len(vars))
	if someShare {
		count |= tuplesSharePointNumbers
	}

	w := newByteWriter()
	if err := w.write(count, uint16(offsetToData)); err != nil {
		return nil, err
	}
	w.writeBytes(tuples.bytes())
	w.writeBytes(packedShared)
	w.writeBytes(data.bytes())
	w.pad(2)
	return w.bytes(), nil
}

// compile returns the tuple variation header and the serialized point and delta data
// of `tv`. When `sharedPoints` is non-nil and equal to the points used by `tv` the
// point numbers are omitted from the data.
func (tv *TupleVariation) compile(axisTags []AxisTag, sharedIndex SharedTupleIndex,
	sharedPoints []int, numPoints int, opts Options) (header, aux []byte, err error) {
	var flags uint16
	var tupleData []byte

	coord := tv.compileCoord(axisTags)
	if idx, has := sharedIndex[string(coord)]; has {
		flags = uint16(idx)
	} else {
		flags = embeddedPeakTuple
		tupleData = append(tupleData, coord...)
	}

	if ic := tv.compileIntermediateCoord(axisTags, opts.AlwaysEmbedIntermediate); ic != nil {
		flags |= intermediateRegion
		tupleData = append(tupleData, ic...)
	}

	points := tv.usedPoints()
	if sharedPoints != nil && equalPoints(points, sharedPoints) {
		aux = tv.compileDeltas(points)
	} else {
		flags |= privatePointNumbers
		packed, err := compilePoints(points, numPoints)
		if err != nil {
			return nil, nil, err
		}
		aux = append(packed, tv.compileDeltas(points)...)
	}
	if len(aux) > 0xFFFF {
		logrus.Debugf("Variation data too large: %d", len(aux))
		return nil, nil, fmt.Errorf("%w: variation data of %d bytes", ErrRange, len(aux))
	}

	w := newByteWriter()
	if err := w.write(uint16(len(aux)), flags); err != nil {
		return nil, nil, err
	}
	w.writeBytes(tupleData)
	return w.bytes(), aux, nil
}

func equalPoints(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DecompileGlyph parses the GlyphVariationData `data` of a glyph with `numPoints`
// points. Shared peak references are resolved against `sharedTuples`. Points without
// deltas in a variation are Absent. Empty data yields no variations.
func DecompileGlyph(data []byte, numPoints int, axisTags []AxisTag, sharedTuples []Coordinates) ([]*TupleVariation, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r := newByteReader(data)
	var count, offsetToData uint16
	if err := r.read(&count, &offsetToData); err != nil {
		return nil, err
	}

	dataPos := int64(offsetToData)
	var sharedPoints []int
	if count&tuplesSharePointNumbers != 0 {
		if err := r.Seek(dataPos); err != nil {
			return nil, err
		}
		var err error
		sharedPoints, err = decompilePoints(r, numPoints)
		if err != nil {
			return nil, err
		}
		dataPos = r.Offset()
	}

	axisCount := len(axisTags)
	pos := int64(4)
	var variations []*TupleVariation
	for i := 0; i < int(count&tupleCountMask); i++ {
		if err := r.Seek(pos); err != nil {
			return nil, err
		}
		var dataSize, flags uint16
		if err := r.read(&dataSize, &flags); err != nil {
			return nil, err
		}

		var peak []float64
		if flags&embeddedPeakTuple != 0 {
			var err error
			peak, err = decompileCoord(r, axisCount)
			if err != nil {
				return nil, err
			}
		} else {
			idx := int(flags & tupleIndexMask)
			if idx >= len(sharedTuples) {
				logrus.Debugf("Shared tuple index out of range: %d >= %d", idx, len(sharedTuples))
				return nil, fmt.Errorf("%w: shared tuple index %d, pool has %d", ErrFormat, idx, len(sharedTuples))
			}
			peak = make([]float64, axisCount)
			for j, tag := range axisTags {
				peak[j] = sharedTuples[idx][tag]
			}
		}

		start := make([]float64, axisCount)
		end := make([]float64, axisCount)
		if flags&intermediateRegion != 0 {
			var err error
			if start, err = decompileCoord(r, axisCount); err != nil {
				return nil, err
			}
			if end, err = decompileCoord(r, axisCount); err != nil {
				return nil, err
			}
		} else {
			for j := range peak {
				start[j], end[j] = defaultRegion(peak[j])
			}
		}
		pos = r.Offset()
		if pos > int64(offsetToData) {
			logrus.Debugf("Tuple headers overlap data: %d > %d", pos, offsetToData)
			return nil, fmt.Errorf("%w: tuple variation headers end at %d, data starts at %d",
				ErrFormat, pos, offsetToData)
		}

		if dataPos+int64(dataSize) > int64(len(data)) {
			logrus.Debugf("Variation data past end: %d+%d > %d", dataPos, dataSize, len(data))
			return nil, fmt.Errorf("%w: variation data at %d of %d bytes exceeds glyph data of %d bytes",
				ErrFormat, dataPos, dataSize, len(data))
		}
		dr := newByteReader(data[dataPos : dataPos+int64(dataSize)])

		points := sharedPoints
		if flags&privatePointNumbers == 0 && count&tuplesSharePointNumbers == 0 {
			logrus.Debugf("Tuple variation %d has no point numbers", i)
			return nil, fmt.Errorf("%w: tuple variation %d has neither private nor shared point numbers",
				ErrFormat, i)
		}
		if flags&privatePointNumbers != 0 {
			var err error
			points, err = decompilePoints(dr, numPoints)
			if err != nil {
				return nil, err
			}
		}
		xs, err := decompileDeltaValues(dr, len(points))
		if err != nil {
			return nil, err
		}
		ys, err := decompileDeltaValues(dr, len(points))
		if err != nil {
			return nil, err
		}

		tv := &TupleVariation{Deltas: make([]PointDelta, numPoints)}
		for j, p := range points {
			tv.Deltas[p] = Delta(xs[j], ys[j])
		}
		for j, tag := range axisTags {
			ar := AxisRange{Start: start[j], Peak: peak[j], End: end[j]}
			if !ar.isDefault() {
				tv.Axes.set(tag, ar)
			}
		}
		variations = append(variations, tv)
		dataPos += int64(dataSize)
	}
	return variations, nil
}
