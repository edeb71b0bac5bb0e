/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// byteReader encapsulates an in-memory table with buffering and provides methods to read
// binary data as needed for font tables. Reads past the end of the data fail with ErrFormat.
type byteReader struct {
	rs     io.ReadSeeker
	reader *bufio.Reader
	size   int64
}

func newByteReader(data []byte) *byteReader {
	rs := bytes.NewReader(data)
	return &byteReader{
		rs:     rs,
		reader: bufio.NewReader(rs),
		size:   int64(len(data)),
	}
}

// formatError converts short reads to ErrFormat, other errors are passed on.
func formatError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: unexpected end of data", ErrFormat)
	}
	return err
}

// Offset returns current offset position of `r`.
func (r byteReader) Offset() int64 {
	offset, _ := r.rs.Seek(0, io.SeekCurrent)
	offset -= int64(r.reader.Buffered())
	return offset
}

// Seek seeks to offset.
func (r *byteReader) Seek(offset int64) error {
	if offset < 0 || offset > r.size {
		logrus.Debugf("Seek out of range: %d (size %d)", offset, r.size)
		return fmt.Errorf("%w: offset %d outside data of length %d", ErrFormat, offset, r.size)
	}
	_, err := r.rs.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}
	r.reader.Reset(r.rs)
	return nil
}

// readBytes reads bytes straight from `r`.
func (r *byteReader) readBytes(bp *[]byte, length int) error {
	if int64(length) > r.size-r.Offset() {
		return fmt.Errorf("%w: %d bytes requested at offset %d, data length %d",
			ErrFormat, length, r.Offset(), r.size)
	}
	*bp = make([]byte, length)
	_, err := io.ReadFull(r.reader, *bp)
	return formatError(err)
}

// readSlice reads a series of values into `slice` from `r` (big endian).
func (r *byteReader) readSlice(slice interface{}, length int) error {
	switch t := slice.(type) {
	case *[]int8:
		for i := 0; i < length; i++ {
			val, err := r.readInt8()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]int16:
		for i := 0; i < length; i++ {
			val, err := r.readInt16()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]F2Dot14:
		for i := 0; i < length; i++ {
			val, err := r.readF2dot14()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]offset16:
		for i := 0; i < length; i++ {
			val, err := r.readOffset16()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]offset32:
		for i := 0; i < length; i++ {
			val, err := r.readOffset32()
			if err != nil {
				return err
			}
			*t = append(*t, val)
		}

	default:
		logrus.Debugf("Unsupported type: %T (readSlice)", t)
		return errTypeCheck
	}
	return nil
}

// read reads a series of fields from `r`.
func (r byteReader) read(fields ...interface{}) error {
	for _, f := range fields {
		switch t := f.(type) {
		case *uint16:
			val, err := r.readUint16()
			if err != nil {
				return err
			}
			*t = val
		case *offset32:
			val, err := r.readOffset32()
			if err != nil {
				return err
			}
			*t = val

		default:
			logrus.Debugf("Unsupported type: %T (read)", t)
			return errTypeCheck
		}
	}
	return nil
}

func (r byteReader) readF2dot14() (F2Dot14, error) {
	b := make([]byte, 2)
	_, err := io.ReadFull(r.reader, b)
	if err != nil {
		return 0, formatError(err)
	}
	return ParseF2Dot14(b)
}

func (r byteReader) readUint8() (uint8, error) {
	var val uint8
	err := binary.Read(r.reader, binary.BigEndian, &val)
	return val, formatError(err)
}

func (r byteReader) readUint16() (uint16, error) {
	var val uint16
	err := binary.Read(r.reader, binary.BigEndian, &val)
	return val, formatError(err)
}

func (r byteReader) readInt8() (int8, error) {
	var val int8
	err := binary.Read(r.reader, binary.BigEndian, &val)
	return val, formatError(err)
}

func (r byteReader) readInt16() (int16, error) {
	var val int16
	err := binary.Read(r.reader, binary.BigEndian, &val)
	return val, formatError(err)
}

func (r byteReader) readOffset16() (offset16, error) {
	var val offset16
	err := binary.Read(r.reader, binary.BigEndian, &val)
	return val, formatError(err)
}

func (r byteReader) readOffset32() (offset32, error) {
	var val offset32
	err := binary.Read(r.reader, binary.BigEndian, &val)
	return val, formatError(err)
}
