/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deHex decodes a hex string with optional whitespace, e.g. "00 0A FF".
func deHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	require.NoError(t, err)
	return b
}

// coordTol is the quantization step of F2Dot14.
const coordTol = 1.0 / f2dot14Scale

func TestF2Dot14(t *testing.T) {
	tcases := []struct {
		val   float64
		f     F2Dot14
		bytes string
		f64   float64
	}{
		{1.0, 0x4000, "40 00", 1.0},
		{-1.0, -0x4000, "C0 00", -1.0},
		{0.0, 0, "00 00", 0.0},
		{0.7, 0x2CCD, "2C CD", 11469.0 / 16384},
		{0.8, 0x3333, "33 33", 13107.0 / 16384},
		{-0.5, -0x2000, "E0 00", -0.5},
		{1.99993896484375, 0x7FFF, "7F FF", 1.99993896484375},
		{-2.0, -0x8000, "80 00", -2.0},
		// Clamped.
		{5.0, 0x7FFF, "7F FF", 1.99993896484375},
		{-5.0, -0x8000, "80 00", -2.0},
		// Halves round away from zero.
		{0.5 / 16384, 1, "00 01", 1.0 / 16384},
		{-0.5 / 16384, -1, "FF FF", -1.0 / 16384},
	}

	for _, tcase := range tcases {
		f := NewF2Dot14(tcase.val)
		assert.Equal(t, tcase.f, f, "%v", tcase.val)
		assert.Equal(t, deHex(t, tcase.bytes), f.Bytes(), "%v", tcase.val)
		assert.Equal(t, tcase.f64, f.Float64(), "%v", tcase.val)

		parsed, err := ParseF2Dot14(f.Bytes())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
		assert.InDelta(t, f.Float64(), parsed.Float64(), coordTol)
	}
}

func TestF2Dot14Truncated(t *testing.T) {
	_, err := ParseF2Dot14([]byte{0x40})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
}
