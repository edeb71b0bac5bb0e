/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two variations over wght and wdth with deltas for all 4 points.
func sampleGlyphVariations(t testing.TB) []*TupleVariation {
	d := deltas(1, 1, 2, 2, 3, 3, 4, 4)
	return []*TupleVariation{
		makeVariation(t, d, ax("wght", 0.5, 1, 1), ax("wdth", 1, 1, 1)),
		makeVariation(t, d, ax("wght", 1, 1, 1), ax("wdth", 1, 1, 1)),
	}
}

const sampleGlyphData = "80 02 00 24 " +
	"00 0A C0 00 40 00 40 00 20 00 40 00 40 00 40 00 " +
	"00 0A C0 00 40 00 40 00 40 00 40 00 40 00 40 00 " +
	"00 " +
	"03 01 02 03 04 03 01 02 03 04 " +
	"03 01 02 03 04 03 01 02 03 04 " +
	"00"

func TestCompileGlyphEmpty(t *testing.T) {
	tags := axisTags("wght")

	data, err := CompileGlyph(nil, 4, tags, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, data)

	noImpact := []*TupleVariation{
		makeVariation(t, []PointDelta{Absent, Absent, Absent, Absent}, ax("wght", 0, 1, 1)),
		nil,
	}
	data, err = CompileGlyph(noImpact, 4, tags, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, data)

	variations, err := DecompileGlyph(data, 4, tags, nil)
	require.NoError(t, err)
	assert.Empty(t, variations)
}

func TestCompileGlyphRoundTrip(t *testing.T) {
	tags := axisTags("wght", "wdth")
	variations := sampleGlyphVariations(t)

	data, err := CompileGlyph(variations, 4, tags, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, deHex(t, sampleGlyphData), data)

	decoded, err := DecompileGlyph(data, 4, tags, nil)
	require.NoError(t, err)
	assertVariationsEqual(t, variations, decoded)
}

func TestCompileGlyphPrivatePoints(t *testing.T) {
	tags := axisTags("wght", "wdth")
	variations := sampleGlyphVariations(t)

	data, err := CompileGlyph(variations, 4, tags, nil, &Options{DisableSharedPoints: true})
	require.NoError(t, err)
	expected := "00 02 00 24 " +
		"00 0B E0 00 40 00 40 00 20 00 40 00 40 00 40 00 " +
		"00 0B E0 00 40 00 40 00 40 00 40 00 40 00 40 00 " +
		"00 03 01 02 03 04 03 01 02 03 04 " +
		"00 03 01 02 03 04 03 01 02 03 04"
	assert.Equal(t, deHex(t, expected), data)

	decoded, err := DecompileGlyph(data, 4, tags, nil)
	require.NoError(t, err)
	assertVariationsEqual(t, variations, decoded)
}

func TestCompileGlyphSharedTuple(t *testing.T) {
	tags := axisTags("wght", "wdth")
	tv := makeVariation(t, deltas(1, 1, 2, 2, 3, 3, 4, 4), ax("wght", 0, 1, 1))

	index, err := NewSharedTupleIndex([][]byte{deHex(t, "40 00 00 00")})
	require.NoError(t, err)

	data, err := CompileGlyph([]*TupleVariation{tv}, 4, tags, index, nil)
	require.NoError(t, err)
	// Peak referenced as shared tuple 0. A single variation keeps its own points.
	assert.Equal(t, deHex(t, "00 01 00 08 00 0B 20 00 00 03 01 02 03 04 03 01 02 03 04 00"), data)

	sharedTuples := []Coordinates{{MustAxisTag("wght"): 1, MustAxisTag("wdth"): 0}}
	decoded, err := DecompileGlyph(data, 4, tags, sharedTuples)
	require.NoError(t, err)
	assertVariationsEqual(t, []*TupleVariation{tv}, decoded)
	assert.Equal(t, axisTags("wght"), decoded[0].Axes.Tags())

	// No pool to resolve the reference.
	_, err = DecompileGlyph(data, 4, tags, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat), "%v", err)
}

func TestCompileGlyphAlwaysEmbedIntermediate(t *testing.T) {
	tags := axisTags("wght")
	variations := []*TupleVariation{makeVariation(t, deltas(1, 1, 2, 2), ax("wght", 0, 1, 1))}

	data, err := CompileGlyph(variations, 2, tags, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, deHex(t, "A0 00"), data[6:8])

	data, err = CompileGlyph(variations, 2, tags, nil, &Options{AlwaysEmbedIntermediate: true})
	require.NoError(t, err)
	assert.Equal(t, deHex(t, "E0 00 40 00 00 00 40 00"), data[6:14])

	decoded, err := DecompileGlyph(data, 2, tags, nil)
	require.NoError(t, err)
	assertVariationsEqual(t, variations, decoded)
}

func TestCompileGlyphSparsePoints(t *testing.T) {
	tags := axisTags("wght", "wdth")

	testcases := []struct {
		name       string
		variations []*TupleVariation
		shared     bool
	}{
		{
			"disjoint",
			[]*TupleVariation{
				makeVariation(t, []PointDelta{Delta(5, 0), Absent, Delta(-3, 200), Absent, Absent, Absent},
					ax("wght", 0, 1, 1)),
				makeVariation(t, []PointDelta{Absent, Delta(1, 1), Delta(0, 0), Delta(-1, -1), Absent, Absent},
					ax("wdth", -1, -1, 0)),
			},
			false,
		},
		{
			// The shared points would cost as much as they save.
			"single union user",
			[]*TupleVariation{
				makeVariation(t, []PointDelta{Delta(1, 2), Delta(3, 4), Delta(5, 6), Delta(7, 8), Absent, Absent},
					ax("wght", 0, 1, 1)),
				makeVariation(t, []PointDelta{Absent, Delta(300, -300), Absent, Absent, Absent, Absent},
					ax("wght", 0, 1, 1), ax("wdth", 0, 1, 1)),
			},
			false,
		},
		{
			"union",
			[]*TupleVariation{
				makeVariation(t, []PointDelta{Delta(1, 2), Delta(3, 4), Delta(5, 6), Delta(7, 8), Absent, Absent},
					ax("wght", 0, 1, 1)),
				makeVariation(t, []PointDelta{Absent, Delta(300, -300), Absent, Absent, Absent, Absent},
					ax("wght", 0, 1, 1), ax("wdth", 0, 1, 1)),
				makeVariation(t, []PointDelta{Delta(0, 1), Delta(0, 2), Delta(0, 3), Delta(0, 4), Absent, Absent},
					ax("wdth", 0, 1, 1)),
			},
			true,
		},
	}

	for _, tcase := range testcases {
		data, err := CompileGlyph(tcase.variations, 6, tags, nil, nil)
		require.NoError(t, err, tcase.name)
		assert.Equal(t, tcase.shared, data[0]&0x80 != 0, tcase.name)
		assert.Zero(t, len(data)%2, tcase.name)

		decoded, err := DecompileGlyph(data, 6, tags, nil)
		require.NoError(t, err, tcase.name)
		assertVariationsEqual(t, tcase.variations, decoded)
	}
}

func TestCompileGlyphErrors(t *testing.T) {
	tags := axisTags("wght")

	// Point count mismatch.
	tv := makeVariation(t, deltas(1, 1, 2, 2, 3, 3), ax("wght", 0, 1, 1))
	_, err := CompileGlyph([]*TupleVariation{tv}, 4, tags, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructure), "%v", err)

	// Axis not in the font.
	tv = makeVariation(t, deltas(1, 1), ax("ital", 0, 1, 1))
	_, err = CompileGlyph([]*TupleVariation{tv}, 1, tags, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructure), "%v", err)

	// Shared tuple limit above the maximum.
	tv = makeVariation(t, deltas(1, 1), ax("wght", 0, 1, 1))
	_, err = CompileGlyph([]*TupleVariation{tv}, 1, tags, nil, &Options{MaxSharedTuples: MaxSharedTuples + 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRange), "%v", err)
}

func TestDecompileGlyphTruncated(t *testing.T) {
	tags := axisTags("wght", "wdth")
	data := deHex(t, sampleGlyphData)

	for _, n := range []int{1, 3, 10, 30, 37, 50} {
		_, err := DecompileGlyph(data[:n], 4, tags, nil)
		require.Error(t, err, "%d bytes", n)
		assert.True(t, errors.Is(err, ErrFormat), "%d bytes: %v", n, err)
	}
}

func TestCompileGlyphSharedPointsSize(t *testing.T) {
	tags := axisTags("wght")
	single := []*TupleVariation{makeVariation(t, deltas(1, 1, 2, 2, 3, 3, 4, 4), ax("wght", 0, 1, 1))}

	data, err := CompileGlyph(single, 4, tags, nil, nil)
	require.NoError(t, err)
	private, err := CompileGlyph(single, 4, tags, nil, &Options{DisableSharedPoints: true})
	require.NoError(t, err)
	assert.Equal(t, private, data)
	assert.Equal(t, deHex(t, "00 01"), data[:2])

	three := append(single,
		makeVariation(t, deltas(1, 1, 2, 2, 3, 3, 4, 4), ax("wght", -1, -1, 0)),
		makeVariation(t, deltas(1, 1, 2, 2, 3, 3, 4, 4), ax("wght", 0, 0.5, 1)))
	data, err = CompileGlyph(three, 4, tags, nil, nil)
	require.NoError(t, err)
	private, err = CompileGlyph(three, 4, tags, nil, &Options{DisableSharedPoints: true})
	require.NoError(t, err)
	assert.Equal(t, deHex(t, "80 03"), data[:2])
	assert.Less(t, len(data), len(private))
}

func TestDecompileGlyphMalformed(t *testing.T) {
	tags := axisTags("wght")
	testcases := []struct {
		name string
		data string
	}{
		// Private points flag cleared, no shared points.
		{"no points", "00 01 00 0A 00 06 80 00 40 00 00 01 80 00 01 80"},
		// offsetToData points into the tuple header.
		{"headers overlap data", "00 01 00 06 00 06 A0 00 40 00 01 00 00 00 01 80"},
	}

	for _, tcase := range testcases {
		_, err := DecompileGlyph(deHex(t, tcase.data), 4, tags, nil)
		require.Error(t, err, tcase.name)
		assert.True(t, errors.Is(err, ErrFormat), "%s: %v", tcase.name, err)
	}

	// The same glyph with the private points flag set decodes.
	variations, err := DecompileGlyph(deHex(t, "00 01 00 0A 00 06 A0 00 40 00 01 00 00 00 01 80"), 4, tags, nil)
	require.NoError(t, err)
	assertVariationsEqual(t, []*TupleVariation{
		makeVariation(t, []PointDelta{Delta(1, 0), Absent, Absent, Absent}, ax("wght", 0, 1, 1)),
	}, variations)
}
