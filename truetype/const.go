/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import "errors"

// Errors returned by the codec. Returned errors wrap one of these and carry the detail,
// so test with errors.Is.
var (
	// ErrStructure indicates inputs that do not fit together, e.g. a tuple variation
	// referencing an axis the font does not have or a delta count that differs from the
	// glyph's point count.
	ErrStructure = errors.New("structural error")

	// ErrRange indicates a value that cannot be represented: coordinates outside the
	// F2Dot14 range, malformed tags, too many shared tuples.
	ErrRange = errors.New("range check error")

	// ErrFormat indicates malformed binary data when decoding.
	ErrFormat = errors.New("format error")
)

var (
	errTypeCheck     = errors.New("type check error")
	errRequiredField = errors.New("required field missing")
)
