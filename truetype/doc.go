/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package truetype supports compiling and parsing the glyph variations (gvar) table of
// variable TrueType fonts. Tuple variations are serialized per glyph with shared peak
// tuples pooled across the font, and the result is byte compatible with the OpenType
// and Apple TrueType specifications of the table.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/gvar
package truetype
