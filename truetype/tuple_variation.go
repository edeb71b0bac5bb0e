/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// PointDelta is the delta of one glyph point in a tuple variation. It is either present
// with an (X, Y) offset in font units, or Absent, meaning the variation carries no
// explicit delta for the point (renderers infer one). Absent is distinct from a zero
// delta. The zero value is Absent.
type PointDelta struct {
	X, Y    int16
	present bool
}

// Absent is the delta of a point not touched by a variation.
var Absent = PointDelta{}

// Delta returns a present point delta.
func Delta(dx, dy int16) PointDelta {
	return PointDelta{X: dx, Y: dy, present: true}
}

// IsPresent reports whether `p` carries an explicit delta.
func (p PointDelta) IsPresent() bool {
	return p.present
}

func (p PointDelta) String() string {
	if !p.present {
		return "-"
	}
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// TupleVariation is one deformation of a glyph: the region of the design space where it
// applies and a delta per point. Deltas has one entry per glyph point, including the
// four phantom points.
type TupleVariation struct {
	Axes   AxisRanges
	Deltas []PointDelta
}

// NewTupleVariation returns a variation over `axes` with `deltas`.
func NewTupleVariation(axes AxisRanges, deltas []PointDelta) *TupleVariation {
	return &TupleVariation{Axes: axes, Deltas: deltas}
}

// HasImpact reports whether `tv` has at least one present delta. Variations without
// impact are dropped when compiling.
func (tv *TupleVariation) HasImpact() bool {
	for _, d := range tv.Deltas {
		if d.present {
			return true
		}
	}
	return false
}

// usedPoints returns the indices of the points with present deltas, ascending.
func (tv *TupleVariation) usedPoints() []int {
	var points []int
	for i, d := range tv.Deltas {
		if d.present {
			points = append(points, i)
		}
	}
	return points
}

// Equal reports whether `tv` and `o` have the same axes (within `tol`) and the same deltas.
func (tv *TupleVariation) Equal(o *TupleVariation, tol float64) bool {
	if tv == nil || o == nil {
		return tv == o
	}
	if !tv.Axes.Equal(o.Axes, tol) || len(tv.Deltas) != len(o.Deltas) {
		return false
	}
	for i := range tv.Deltas {
		if tv.Deltas[i] != o.Deltas[i] {
			return false
		}
	}
	return true
}

func (tv *TupleVariation) String() string {
	var deltas []string
	for _, d := range tv.Deltas {
		deltas = append(deltas, d.String())
	}
	return fmt.Sprintf("<TupleVariation %s [%s]>", tv.Axes, strings.Join(deltas, " "))
}

// checkAxes verifies that every axis of `tv` is one of `axisTags`.
func (tv *TupleVariation) checkAxes(axisTags []AxisTag) error {
	for _, tag := range tv.Axes.tags {
		if indexOfAxis(axisTags, tag) < 0 {
			logrus.Debugf("Unknown axis %s (axes: %v)", tag, axisTags)
			return fmt.Errorf("%w: tuple variation references axis %q not in the font", ErrStructure, tag.String())
		}
	}
	return nil
}

func indexOfAxis(axisTags []AxisTag, tag AxisTag) int {
	for i, t := range axisTags {
		if t == tag {
			return i
		}
	}
	return -1
}

// compileCoord returns the peak tuple of `tv` as F2Dot14 values for every axis of
// `axisTags`, in that order. Axes without a range contribute zero.
func (tv *TupleVariation) compileCoord(axisTags []AxisTag) []byte {
	var buf bytes.Buffer
	for _, tag := range axisTags {
		ar, _ := tv.Axes.Get(tag)
		buf.Write(NewF2Dot14(ar.Peak).Bytes())
	}
	return buf.Bytes()
}

// compileIntermediateCoord returns the start tuple followed by the end tuple, or nil
// when every axis uses the region implied by its peak (and `always` is false).
func (tv *TupleVariation) compileIntermediateCoord(axisTags []AxisTag, always bool) []byte {
	needed := always
	for _, tag := range axisTags {
		if needed {
			break
		}
		ar, _ := tv.Axes.Get(tag)
		start, end := defaultRegion(ar.Peak)
		if ar.Start != start || ar.End != end {
			needed = true
		}
	}
	if !needed {
		return nil
	}

	var starts, ends bytes.Buffer
	for _, tag := range axisTags {
		ar, _ := tv.Axes.Get(tag)
		starts.Write(NewF2Dot14(ar.Start).Bytes())
		ends.Write(NewF2Dot14(ar.End).Bytes())
	}
	return append(starts.Bytes(), ends.Bytes()...)
}
