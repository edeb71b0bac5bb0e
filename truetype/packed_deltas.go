/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Packed deltas.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otvarcommonformats#packed-deltas
const (
	deltasAreZero     = 0x80
	deltasAreWords    = 0x40
	deltaRunCountMask = 0x3F
	maxDeltaRunLength = 64
)

func isByteDelta(v int16) bool {
	return v >= -128 && v <= 127
}

// compileDeltaValues encodes `deltas` as runs of zeros, bytes and words.
func compileDeltaValues(deltas []int16) []byte {
	w := newByteWriter()
	pos := 0
	for pos < len(deltas) {
		switch v := deltas[pos]; {
		case v == 0:
			pos = encodeDeltaRunAsZeroes(w, deltas, pos)
		case isByteDelta(v):
			pos = encodeDeltaRunAsBytes(w, deltas, pos)
		default:
			pos = encodeDeltaRunAsWords(w, deltas, pos)
		}
	}
	return w.bytes()
}

func encodeDeltaRunAsZeroes(w *byteWriter, deltas []int16, offset int) int {
	pos := offset
	for pos < len(deltas) && pos-offset < maxDeltaRunLength && deltas[pos] == 0 {
		pos++
	}
	w.writeUint8(deltasAreZero | uint8(pos-offset-1))
	return pos
}

func encodeDeltaRunAsBytes(w *byteWriter, deltas []int16, offset int) int {
	pos := offset
	for pos < len(deltas) && pos-offset < maxDeltaRunLength {
		v := deltas[pos]
		if !isByteDelta(v) {
			break
		}
		// A single zero is cheaper inline, two or more start a zero run.
		if v == 0 && pos+1 < len(deltas) && deltas[pos+1] == 0 {
			break
		}
		pos++
	}
	w.writeUint8(uint8(pos - offset - 1))
	for _, v := range deltas[offset:pos] {
		w.writeInt8(int8(v))
	}
	return pos
}

func encodeDeltaRunAsWords(w *byteWriter, deltas []int16, offset int) int {
	pos := offset
	for pos < len(deltas) && pos-offset < maxDeltaRunLength {
		v := deltas[pos]
		if v == 0 {
			break
		}
		// A lone byte sized value stays in the word run, two in a row start a byte run.
		if isByteDelta(v) && pos+1 < len(deltas) && isByteDelta(deltas[pos+1]) {
			break
		}
		pos++
	}
	w.writeUint8(deltasAreWords | uint8(pos-offset-1))
	w.writeInt16(deltas[offset:pos]...)
	return pos
}

// decompileDeltaValues reads `n` packed deltas from `r`.
func decompileDeltaValues(r *byteReader, n int) ([]int16, error) {
	deltas := make([]int16, 0, n)
	for len(deltas) < n {
		runHeader, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		runLength := int(runHeader&deltaRunCountMask) + 1
		if len(deltas)+runLength > n {
			logrus.Debugf("Delta run overflows count: %d+%d > %d", len(deltas), runLength, n)
			return nil, fmt.Errorf("%w: delta run of %d exceeds %d deltas", ErrFormat, runLength, n)
		}
		switch {
		case runHeader&deltasAreZero != 0:
			for i := 0; i < runLength; i++ {
				deltas = append(deltas, 0)
			}
		case runHeader&deltasAreWords != 0:
			err = r.readSlice(&deltas, runLength)
		default:
			var vals []int8
			err = r.readSlice(&vals, runLength)
			for _, v := range vals {
				deltas = append(deltas, int16(v))
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return deltas, nil
}

// compileDeltas encodes the X then Y deltas of the points `points` of `tv`.
func (tv *TupleVariation) compileDeltas(points []int) []byte {
	xs := make([]int16, len(points))
	ys := make([]int16, len(points))
	for i, p := range points {
		xs[i] = tv.Deltas[p].X
		ys[i] = tv.Deltas[p].Y
	}
	return append(compileDeltaValues(xs), compileDeltaValues(ys)...)
}
