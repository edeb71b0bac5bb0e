/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

// Compile builds the gvar table for a font with axes `axisTags` (in fvar order) and
// glyphs `glyphs` (in glyph order), from the tuple variations of each glyph.
// Variations without impact are dropped. `opts` may be nil.
func Compile(axisTags []AxisTag, glyphs []Glyph, variations map[GlyphName][]*TupleVariation,
	opts *Options) ([]byte, error) {
	_, data, err := compileTable(axisTags, glyphs, variations, opts)
	return data, err
}

// Build is like Compile but also returns the table model: shared tuples, offsets and
// per-glyph data.
func Build(axisTags []AxisTag, glyphs []Glyph, variations map[GlyphName][]*TupleVariation,
	opts *Options) (*GvarTable, []byte, error) {
	return compileTable(axisTags, glyphs, variations, opts)
}

// Decompile parses the gvar table `data` of a font with axes `axisTags` and glyphs
// `glyphs`. `opts` may be nil.
func Decompile(data []byte, axisTags []AxisTag, glyphs []Glyph, opts *Options) (*GvarTable, error) {
	return decompileTable(data, axisTags, glyphs, opts)
}
