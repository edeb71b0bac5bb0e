/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// MaxSharedTuples is the maximum number of shared tuples that tuple variation headers
// can reference (12 bit index).
const MaxSharedTuples = 0x0FFF

// SharedTupleIndex maps an encoded peak tuple to its index in the shared tuple pool.
type SharedTupleIndex map[string]int

// CompileSharedTuples builds the font wide pool of shared peak tuples from the tuple
// variations of all glyphs, given in glyph order. Peaks used by at least two variations
// with impact are pooled, the most frequent first, ties in order of first occurrence.
// Each pooled tuple is encoded as one F2Dot14 per axis of `axisTags`.
func CompileSharedTuples(axisTags []AxisTag, variations []*TupleVariation) ([][]byte, error) {
	return compileSharedTuples(axisTags, variations, MaxSharedTuples)
}

func compileSharedTuples(axisTags []AxisTag, variations []*TupleVariation, limit int) ([][]byte, error) {
	type coordCount struct {
		coord []byte
		count int
	}
	var order []*coordCount
	counts := map[string]*coordCount{}

	for _, tv := range variations {
		if tv == nil || !tv.HasImpact() {
			continue
		}
		if err := tv.checkAxes(axisTags); err != nil {
			return nil, err
		}
		coord := tv.compileCoord(axisTags)
		cc, has := counts[string(coord)]
		if !has {
			cc = &coordCount{coord: coord}
			counts[string(coord)] = cc
			order = append(order, cc)
		}
		cc.count++
	}

	var shared []*coordCount
	for _, cc := range order {
		if cc.count > 1 {
			shared = append(shared, cc)
		}
	}
	sort.SliceStable(shared, func(i, j int) bool {
		return shared[i].count > shared[j].count
	})
	if len(shared) > limit {
		logrus.Debugf("Shared tuples truncated: %d > %d", len(shared), limit)
		shared = shared[:limit]
	}

	pool := make([][]byte, len(shared))
	for i, cc := range shared {
		pool[i] = cc.coord
	}
	logrus.Debugf("Shared tuples: %d of %d distinct peaks", len(pool), len(order))
	return pool, nil
}

// NewSharedTupleIndex returns the index of the encoded tuples in `pool`.
// Fails with ErrRange if the pool has more entries than can be referenced.
func NewSharedTupleIndex(pool [][]byte) (SharedTupleIndex, error) {
	if len(pool) > MaxSharedTuples {
		logrus.Debugf("Range check error: %d shared tuples", len(pool))
		return nil, fmt.Errorf("%w: %d shared tuples exceed %d", ErrRange, len(pool), MaxSharedTuples)
	}
	index := SharedTupleIndex{}
	for i, coord := range pool {
		if _, has := index[string(coord)]; !has {
			index[string(coord)] = i
		}
	}
	return index, nil
}

// DecompileSharedTuples reads `count` shared tuples over `axisTags` from `data` starting
// at `offset`. Each tuple maps every axis to its coordinate. No data is read when
// `count` is 0.
func DecompileSharedTuples(axisTags []AxisTag, count int, data []byte, offset int) ([]Coordinates, error) {
	tuples := []Coordinates{}
	if count == 0 {
		return tuples, nil
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative shared tuple count %d", ErrRange, count)
	}

	need := int64(offset) + int64(count)*int64(len(axisTags))*2
	if offset < 0 || need > int64(len(data)) {
		logrus.Debugf("Shared tuples past end of data: %d > %d", need, len(data))
		return nil, fmt.Errorf("%w: %d shared tuples at offset %d need %d bytes, have %d",
			ErrFormat, count, offset, need, len(data))
	}

	r := newByteReader(data)
	if err := r.Seek(int64(offset)); err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		coords, err := decompileCoord(r, len(axisTags))
		if err != nil {
			return nil, err
		}
		tuple := make(Coordinates, len(axisTags))
		for j, tag := range axisTags {
			tuple[tag] = coords[j]
		}
		tuples = append(tuples, tuple)
	}
	return tuples, nil
}

// decompileCoord reads one F2Dot14 per axis.
func decompileCoord(r *byteReader, axisCount int) ([]float64, error) {
	var vals []F2Dot14
	if err := r.readSlice(&vals, axisCount); err != nil {
		return nil, err
	}
	coords := make([]float64, axisCount)
	for i, v := range vals {
		coords[i] = v.Float64()
	}
	return coords, nil
}
