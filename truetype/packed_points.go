/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Packed point numbers.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otvarcommonformats#packed-point-numbers
const (
	pointsAreWords    = 0x80
	pointRunCountMask = 0x7F
	maxPointRunLength = 128
	maxPackedPoints   = 0x7FFF
)

// compilePoints encodes the ascending point indices `points` of a glyph with
// `numPoints` points. The set of all points is encoded as a single zero byte.
func compilePoints(points []int, numPoints int) ([]byte, error) {
	w := newByteWriter()
	n := len(points)
	if n == numPoints {
		w.writeUint8(0)
		return w.bytes(), nil
	}
	if n > maxPackedPoints {
		logrus.Debugf("Too many points: %d", n)
		return nil, fmt.Errorf("%w: %d packed points exceed %d", ErrRange, n, maxPackedPoints)
	}

	if n < 0x80 {
		w.writeUint8(uint8(n))
	} else {
		w.writeUint8(uint8(n>>8)|pointsAreWords, uint8(n&0xFF))
	}

	skips := make([]int, n)
	last := 0
	for i, p := range points {
		skips[i] = p - last
		last = p
		if skips[i] < 0 || skips[i] > 0xFFFF {
			return nil, fmt.Errorf("%w: point %d out of order", ErrRange, p)
		}
	}

	pos := 0
	for pos < n {
		words := skips[pos] > 0xFF
		end := pos
		for end < n && end-pos < maxPointRunLength {
			if !words && skips[end] > 0xFF {
				break
			}
			if words && skips[end] <= 0xFF && endWordRun(skips, end) {
				break
			}
			end++
		}

		runHeader := uint8(end - pos - 1)
		if words {
			runHeader |= pointsAreWords
		}
		w.writeUint8(runHeader)
		for _, s := range skips[pos:end] {
			if words {
				w.writeUint16(uint16(s))
			} else {
				w.writeUint8(uint8(s))
			}
		}
		pos = end
	}
	return w.bytes(), nil
}

// endWordRun reports whether a word run should stop before the byte sized skip at `i`.
// A byte run costs one header byte, and another one if words follow it, so it pays
// off for two trailing skips or three in the middle.
func endWordRun(skips []int, i int) bool {
	k := 0
	for i+k < len(skips) && skips[i+k] <= 0xFF {
		k++
	}
	if i+k == len(skips) {
		return k >= 2
	}
	return k >= 3
}

// decompilePoints reads packed point numbers from `r` for a glyph with `numPoints`
// points.
func decompilePoints(r *byteReader, numPoints int) ([]int, error) {
	b0, err := r.readUint8()
	if err != nil {
		return nil, err
	}
	count := int(b0)
	if b0&pointsAreWords != 0 {
		b1, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		count = int(b0&pointRunCountMask)<<8 | int(b1)
	}

	if count == 0 {
		points := make([]int, numPoints)
		for i := range points {
			points[i] = i
		}
		return points, nil
	}

	points := make([]int, 0, count)
	current := 0
	for len(points) < count {
		runHeader, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		runLength := int(runHeader&pointRunCountMask) + 1
		if len(points)+runLength > count {
			logrus.Debugf("Point run overflows count: %d+%d > %d", len(points), runLength, count)
			return nil, fmt.Errorf("%w: point run of %d exceeds point count %d", ErrFormat, runLength, count)
		}
		for i := 0; i < runLength; i++ {
			var skip int
			if runHeader&pointsAreWords != 0 {
				v, err := r.readUint16()
				if err != nil {
					return nil, err
				}
				skip = int(v)
			} else {
				v, err := r.readUint8()
				if err != nil {
					return nil, err
				}
				skip = int(v)
			}
			current += skip
			if current >= numPoints {
				logrus.Debugf("Point number out of range: %d >= %d", current, numPoints)
				return nil, fmt.Errorf("%w: point %d in a glyph of %d points", ErrFormat, current, numPoints)
			}
			points = append(points, current)
		}
	}
	return points, nil
}
