package header

import (
	"encoding/binary"

	"github.com/meigma/dsarc/internal/arctype"
)

// decoder reads fixed-width fields sequentially from an in-memory buffer.
// Every read is bounds-checked and reports a FormatError instead of panicking.
type decoder struct {
	buf []byte
	pos int
}

func newDecoder(buf []byte) *decoder {
	return &decoder{buf: buf}
}

// Pos returns the current read position.
func (d *decoder) Pos() int {
	return d.pos
}

// Remaining returns the number of unread bytes.
func (d *decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Bytes returns the next n bytes without copying.
func (d *decoder) Bytes(n int, field string) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, &arctype.FormatError{Offset: d.pos, Field: field, Err: arctype.ErrTruncated}
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// Skip advances past n bytes.
func (d *decoder) Skip(n int, field string) error {
	_, err := d.Bytes(n, field)
	return err
}

// Uint32 reads a little-endian unsigned 32-bit integer.
func (d *decoder) Uint32(field string) (uint32, error) {
	b, err := d.Bytes(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
