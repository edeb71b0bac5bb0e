/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
)

// AxisTag identifies a design-variation axis, e.g. "wght" or "wdth". Tags are case
// sensitive and exactly four Latin-1 characters long.
type AxisTag [4]uint8

// NewAxisTag returns the tag for `s`. Fails with ErrRange unless `s` is exactly four
// characters that can be encoded in Latin-1.
func NewAxisTag(s string) (AxisTag, error) {
	var t AxisTag
	i := 0
	for _, r := range s {
		if i == len(t) {
			logrus.Debugf("Axis tag too long: %q", s)
			return AxisTag{}, fmt.Errorf("%w: axis tag %q longer than 4 characters", ErrRange, s)
		}
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			logrus.Debugf("Axis tag not Latin-1: %q", s)
			return AxisTag{}, fmt.Errorf("%w: axis tag %q has non Latin-1 character %q", ErrRange, s, r)
		}
		t[i] = b
		i++
	}
	if i != len(t) {
		logrus.Debugf("Axis tag too short: %q", s)
		return AxisTag{}, fmt.Errorf("%w: axis tag %q shorter than 4 characters", ErrRange, s)
	}
	return t, nil
}

// MustAxisTag is like NewAxisTag but panics on malformed tags.
func MustAxisTag(s string) AxisTag {
	t, err := NewAxisTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewAxisTags converts a list of strings to tags.
func NewAxisTags(tags ...string) ([]AxisTag, error) {
	res := make([]AxisTag, 0, len(tags))
	for _, s := range tags {
		t, err := NewAxisTag(s)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, nil
}

func (t AxisTag) String() string {
	var sb strings.Builder
	for _, b := range t {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(b))
	}
	return sb.String()
}

// AxisRange is the region of influence of a tuple variation along one axis, in
// normalized coordinates. Start <= Peak <= End is expected.
type AxisRange struct {
	Start float64
	Peak  float64
	End   float64
}

// NewAxisRange returns the range (start, peak, end). Fails with ErrRange if a value
// cannot be represented as F2Dot14.
func NewAxisRange(start, peak, end float64) (AxisRange, error) {
	for _, v := range []float64{start, peak, end} {
		if !isRepresentable(v) {
			logrus.Debugf("Range check error: %v", v)
			return AxisRange{}, fmt.Errorf("%w: coordinate %v outside [%v, %v]",
				ErrRange, v, MinCoordinate, MaxCoordinate)
		}
	}
	return AxisRange{Start: start, Peak: peak, End: end}, nil
}

// defaultRegion returns the start and end implied by `peak` when a tuple variation does
// not carry an explicit intermediate region.
func defaultRegion(peak float64) (start, end float64) {
	if peak < 0 {
		return peak, 0
	}
	return 0, peak
}

// isDefault reports whether `ar` has no effect along its axis.
func (ar AxisRange) isDefault() bool {
	return ar.Start == 0 && ar.Peak == 0 && ar.End == 0
}

// AxisRanges is an ordered map of axis tags to ranges. Only axes that take part in a
// variation need to be present. The zero value is an empty map ready to use.
type AxisRanges struct {
	tags   []AxisTag
	ranges map[AxisTag]AxisRange
}

// Set sets the range of axis `tag`. Setting an existing axis keeps its position.
// Fails with ErrRange if a coordinate is not representable.
func (a *AxisRanges) Set(tag AxisTag, ar AxisRange) error {
	if _, err := NewAxisRange(ar.Start, ar.Peak, ar.End); err != nil {
		return err
	}
	a.set(tag, ar)
	return nil
}

func (a *AxisRanges) set(tag AxisTag, ar AxisRange) {
	if a.ranges == nil {
		a.ranges = map[AxisTag]AxisRange{}
	}
	if _, has := a.ranges[tag]; !has {
		a.tags = append(a.tags, tag)
	}
	a.ranges[tag] = ar
}

// Get returns the range of axis `tag` and whether it is present.
func (a AxisRanges) Get(tag AxisTag) (AxisRange, bool) {
	ar, has := a.ranges[tag]
	return ar, has
}

// Tags returns the axes in insertion order.
func (a AxisRanges) Tags() []AxisTag {
	tags := make([]AxisTag, len(a.tags))
	copy(tags, a.tags)
	return tags
}

// Len returns the number of axes.
func (a AxisRanges) Len() int {
	return len(a.tags)
}

// Equal reports whether `a` and `b` hold the same axes with ranges equal within `tol`.
// Order is not significant.
func (a AxisRanges) Equal(b AxisRanges, tol float64) bool {
	if a.Len() != b.Len() {
		return false
	}
	near := func(x, y float64) bool {
		d := x - y
		return d <= tol && d >= -tol
	}
	for tag, ar := range a.ranges {
		br, has := b.ranges[tag]
		if !has {
			return false
		}
		if !near(ar.Start, br.Start) || !near(ar.Peak, br.Peak) || !near(ar.End, br.End) {
			return false
		}
	}
	return true
}

func (a AxisRanges) String() string {
	var parts []string
	for _, tag := range a.tags {
		ar := a.ranges[tag]
		parts = append(parts, fmt.Sprintf("%s=(%g, %g, %g)", tag, ar.Start, ar.Peak, ar.End))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Coordinates maps axes to normalized coordinates, e.g. a decoded shared tuple.
type Coordinates map[AxisTag]float64
