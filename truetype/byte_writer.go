/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"bytes"
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// byteWriter provides methods to write binary data as fit for font tables into an
// in-memory buffer. Writes to the buffer cannot fail, only unsupported field types are
// reported.
type byteWriter struct {
	buffer  bytes.Buffer
	scratch [4]byte
}

func newByteWriter() *byteWriter {
	return &byteWriter{}
}

// bytes returns the written data.
func (w *byteWriter) bytes() []byte {
	return w.buffer.Bytes()
}

// bufferedLen returns the length of the current buffer.
func (w *byteWriter) bufferedLen() int {
	return w.buffer.Len()
}

// pad writes zero bytes until the buffer length is a multiple of `n`.
func (w *byteWriter) pad(n int) {
	for w.buffer.Len()%n != 0 {
		w.buffer.WriteByte(0)
	}
}

func (w *byteWriter) writeSlice(slice interface{}) error {
	switch t := slice.(type) {
	case []offset16:
		for _, val := range t {
			w.writeOffset16(val)
		}
	case []offset32:
		for _, val := range t {
			w.writeOffset32(val)
		}
	default:
		logrus.Debugf("Write type check error: %T (slice)", t)
		return errTypeCheck
	}
	return nil
}

// Write a series of values to `w`.
func (w *byteWriter) write(fields ...interface{}) error {
	for _, f := range fields {
		switch t := f.(type) {
		case uint16:
			w.writeUint16(t)
		case offset32:
			w.writeOffset32(t)
		default:
			logrus.Debugf("Write type check error: %T", t)
			return errTypeCheck
		}
	}

	return nil
}

func (w *byteWriter) writeBytes(b []byte) {
	w.buffer.Write(b)
}

func (w *byteWriter) writeUint8(vals ...uint8) {
	w.buffer.Write(vals)
}

func (w *byteWriter) writeInt8(vals ...int8) {
	for _, val := range vals {
		w.buffer.WriteByte(uint8(val))
	}
}

func (w *byteWriter) writeUint16(vals ...uint16) {
	for _, val := range vals {
		binary.BigEndian.PutUint16(w.scratch[:2], val)
		w.buffer.Write(w.scratch[:2])
	}
}

func (w *byteWriter) writeInt16(vals ...int16) {
	for _, val := range vals {
		w.writeUint16(uint16(val))
	}
}

func (w *byteWriter) writeOffset16(val offset16) {
	w.writeUint16(uint16(val))
}

func (w *byteWriter) writeOffset32(val offset32) {
	binary.BigEndian.PutUint32(w.scratch[:], uint32(val))
	w.buffer.Write(w.scratch[:])
}
