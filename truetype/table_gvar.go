/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Glyph describes one glyph of the font for the gvar table: its name and its number of
// points, including the four phantom points. A glyph list gives the glyph order.
type Glyph struct {
	Name      GlyphName
	NumPoints int
}

// GvarTable represents the Glyph Variations table (gvar).
// https://docs.microsoft.com/en-us/typography/opentype/spec/gvar
type GvarTable struct {
	MajorVersion uint16
	MinorVersion uint16

	AxisTags []AxisTag

	// SharedTuples are the pooled peak tuples referenced by glyph variation data.
	SharedTuples []Coordinates

	// Offsets into the glyph variation data array, one per glyph plus the total length.
	OffsetFormat OffsetFormat
	Offsets      []int

	// GlyphData is the glyph variation data of each glyph, by glyph index. Glyphs without
	// variations have empty data.
	GlyphData [][]byte

	// Variations are the tuple variations by glyph.
	Variations map[GlyphName][]*TupleVariation
}

// GlyphDataRange returns the offset and length of the variation data of glyph `gid`,
// relative to the start of the glyph variation data array.
func (t *GvarTable) GlyphDataRange(gid GlyphIndex) (offset int, length int, err error) {
	if int(gid)+1 >= len(t.Offsets) {
		logrus.Debug("invalid range")
		return 0, 0, fmt.Errorf("%w: glyph %d with %d offsets", ErrRange, gid, len(t.Offsets))
	}
	return t.Offsets[gid], t.Offsets[gid+1] - t.Offsets[gid], nil
}

// Compile serializes the variations of `t` for the glyphs `glyphs`.
func (t *GvarTable) Compile(glyphs []Glyph, opts *Options) ([]byte, error) {
	_, data, err := compileTable(t.AxisTags, glyphs, t.Variations, opts)
	return data, err
}

// compileTable builds the gvar table in two passes: the shared tuple pool over the
// whole font first, then each glyph's data and the offsets.
func compileTable(axisTags []AxisTag, glyphs []Glyph, variations map[GlyphName][]*TupleVariation,
	opts *Options) (*GvarTable, []byte, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, nil, err
	}
	if err := checkTableInputs(axisTags, glyphs); err != nil {
		return nil, nil, err
	}

	known := make(map[GlyphName]bool, len(glyphs))
	var all []*TupleVariation
	for _, g := range glyphs {
		known[g.Name] = true
		all = append(all, variations[g.Name]...)
	}
	for name := range variations {
		if !known[name] {
			logrus.Debugf("Variations of unknown glyph %q ignored", name)
		}
	}

	pool, err := compileSharedTuples(axisTags, all, o.MaxSharedTuples)
	if err != nil {
		return nil, nil, err
	}
	sharedIndex, err := NewSharedTupleIndex(pool)
	if err != nil {
		return nil, nil, err
	}

	glyphData := make([][]byte, len(glyphs))
	err = forEachGlyph(len(glyphs), o.Workers, func(i int) error {
		g := glyphs[i]
		data, err := compileGlyph(variations[g.Name], g.NumPoints, axisTags, sharedIndex, o)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", g.Name, err)
		}
		logrus.Tracef("gvar: glyph %d %q: %d bytes", i, g.Name, len(data))
		glyphData[i] = data
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	offsets := make([]int, 0, len(glyphs)+1)
	offset := 0
	for _, data := range glyphData {
		offsets = append(offsets, offset)
		offset += len(data) + len(data)%2
	}
	offsets = append(offsets, offset)

	compiledOffsets, format, err := CompileOffsets(offsets)
	if err != nil {
		return nil, nil, err
	}

	sharedTuplesSize := 0
	for _, coord := range pool {
		sharedTuplesSize += len(coord)
	}
	h := &gvarHeader{
		majorVersion:       1,
		minorVersion:       0,
		axisCount:          uint16(len(axisTags)),
		sharedTupleCount:   uint16(len(pool)),
		sharedTuplesOffset: offset32(gvarHeaderSize + len(compiledOffsets)),
		glyphCount:         uint16(len(glyphs)),
		flags:              uint16(format),
	}
	h.glyphVariationDataArrayOffset = h.sharedTuplesOffset + offset32(sharedTuplesSize)

	w := newByteWriter()
	if err := h.write(w); err != nil {
		return nil, nil, err
	}
	w.writeBytes(compiledOffsets)
	for _, coord := range pool {
		w.writeBytes(coord)
	}
	for _, data := range glyphData {
		w.writeBytes(data)
		w.pad(2)
	}
	logrus.Debugf("gvar: %d glyphs, %d shared tuples, %s offsets, %d bytes",
		len(glyphs), len(pool), format, w.bufferedLen())

	sharedTuples, err := DecompileSharedTuples(axisTags, len(pool), w.bytes(), int(h.sharedTuplesOffset))
	if err != nil {
		return nil, nil, err
	}
	table := &GvarTable{
		MajorVersion: h.majorVersion,
		MinorVersion: h.minorVersion,
		AxisTags:     axisTags,
		SharedTuples: sharedTuples,
		OffsetFormat: format,
		Offsets:      offsets,
		GlyphData:    glyphData,
		Variations:   variations,
	}
	return table, w.bytes(), nil
}

// checkTableInputs verifies the axis and glyph lists fit the table header.
func checkTableInputs(axisTags []AxisTag, glyphs []Glyph) error {
	if len(axisTags) > 0xFFFF {
		return fmt.Errorf("%w: %d axes", ErrRange, len(axisTags))
	}
	if len(glyphs) > 0xFFFF {
		return fmt.Errorf("%w: %d glyphs", ErrRange, len(glyphs))
	}
	seen := map[AxisTag]bool{}
	for _, tag := range axisTags {
		if seen[tag] {
			logrus.Debugf("Duplicate axis %s", tag)
			return fmt.Errorf("%w: duplicate axis %q", ErrStructure, tag.String())
		}
		seen[tag] = true
	}
	for _, g := range glyphs {
		if g.NumPoints < 0 {
			return fmt.Errorf("%w: glyph %q has %d points", ErrStructure, g.Name, g.NumPoints)
		}
	}
	return nil
}

// decompileTable parses the gvar table `data` of a font with axes `axisTags` and glyphs
// `glyphs`.
func decompileTable(data []byte, axisTags []AxisTag, glyphs []Glyph, opts *Options) (*GvarTable, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	r := newByteReader(data)
	h, err := parseGvarHeader(r)
	if err != nil {
		return nil, err
	}
	if h.majorVersion != 1 {
		logrus.Debugf("Unsupported gvar version %d.%d", h.majorVersion, h.minorVersion)
		return nil, fmt.Errorf("%w: gvar version %d.%d", ErrFormat, h.majorVersion, h.minorVersion)
	}
	if int(h.axisCount) != len(axisTags) {
		logrus.Debugf("Axis count mismatch: %d != %d", h.axisCount, len(axisTags))
		return nil, fmt.Errorf("%w: gvar has %d axes, font has %d", ErrStructure, h.axisCount, len(axisTags))
	}
	if int(h.glyphCount) != len(glyphs) {
		logrus.Debugf("Glyph count mismatch: %d != %d", h.glyphCount, len(glyphs))
		return nil, fmt.Errorf("%w: gvar has %d glyphs, font has %d", ErrStructure, h.glyphCount, len(glyphs))
	}

	format := h.offsetFormat()
	size, err := offsetsSize(format, len(glyphs))
	if err != nil {
		return nil, err
	}
	var offsetData []byte
	if err := r.readBytes(&offsetData, size); err != nil {
		return nil, err
	}
	offsets, err := DecompileOffsets(offsetData, format, len(glyphs))
	if err != nil {
		return nil, err
	}

	sharedTuples, err := DecompileSharedTuples(axisTags, int(h.sharedTupleCount), data, int(h.sharedTuplesOffset))
	if err != nil {
		return nil, err
	}

	base := int(h.glyphVariationDataArrayOffset)
	if end := base + offsets[len(offsets)-1]; end > len(data) {
		logrus.Debugf("Glyph variation data past end: %d > %d", end, len(data))
		return nil, fmt.Errorf("%w: glyph variation data ends at %d, table has %d bytes", ErrFormat, end, len(data))
	}

	t := &GvarTable{
		MajorVersion: h.majorVersion,
		MinorVersion: h.minorVersion,
		AxisTags:     axisTags,
		SharedTuples: sharedTuples,
		OffsetFormat: format,
		Offsets:      offsets,
		GlyphData:    make([][]byte, len(glyphs)),
		Variations:   map[GlyphName][]*TupleVariation{},
	}

	decoded := make([][]*TupleVariation, len(glyphs))
	err = forEachGlyph(len(glyphs), o.Workers, func(i int) error {
		gd := data[base+offsets[i] : base+offsets[i+1]]
		t.GlyphData[i] = gd
		vars, err := DecompileGlyph(gd, glyphs[i].NumPoints, axisTags, sharedTuples)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", glyphs[i].Name, err)
		}
		decoded[i] = vars
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, vars := range decoded {
		if len(vars) > 0 {
			t.Variations[glyphs[i].Name] = vars
		}
	}
	return t, nil
}

// forEachGlyph calls `fn` for glyph indices 0..n-1 split across `workers` goroutines.
// The first error is returned once all goroutines are done.
func forEachGlyph(n, workers int, fn func(i int) error) error {
	if workers < 1 {
		workers = 1
	}
	perWorker := (n + workers - 1) / workers

	var wg sync.WaitGroup
	var firstError error
	var errMu sync.Mutex

	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					errMu.Lock()
					if firstError == nil {
						firstError = err
					}
					errMu.Unlock()
					return
				}
			}
		}(start, end)
	}

	wg.Wait()
	return firstError
}
