package header

import (
	"fmt"

	"github.com/meigma/dsarc/internal/arctype"
	"github.com/meigma/dsarc/internal/sizing"
)

// Layout constants for the DSARC FL header.
const (
	// Magic is the tag every archive starts with.
	Magic = "DSARC FL"

	// PreludeSize covers the magic tag, entry count and reserved word.
	PreludeSize = 16

	// NameSize is the width of the filename field in an entry record.
	NameSize = 112

	// RecordSize is the size of one entry record.
	RecordSize = NameSize + 16
)

// Parse decodes the header at the start of data.
//
// Only the header is examined; payload ranges are not checked against the
// buffer length here. The returned entries share no memory with data.
func Parse(data []byte) (arctype.Header, error) {
	d := newDecoder(data)

	magic, err := d.Bytes(len(Magic), "magic")
	if err != nil {
		return arctype.Header{}, err
	}
	if string(magic) != Magic {
		return arctype.Header{}, &arctype.FormatError{Offset: 0, Field: "magic", Err: arctype.ErrBadMagic}
	}

	count, err := d.Uint32("entry_count")
	if err != nil {
		return arctype.Header{}, err
	}
	if err := d.Skip(4, "reserved"); err != nil {
		return arctype.Header{}, err
	}

	// Reject short tables before allocating for a declared count.
	need, ok := sizing.MulUint64(uint64(count), RecordSize)
	if !ok || need > uint64(d.Remaining()) {
		return arctype.Header{}, &arctype.FormatError{
			Offset: d.Pos(),
			Field:  "entries",
			Err:    fmt.Errorf("%w: %d entries need %d bytes, %d available", arctype.ErrTruncated, count, need, d.Remaining()),
		}
	}

	entries := make([]arctype.Entry, 0, count)
	for i := range int(count) {
		entry, err := decodeEntry(d, i)
		if err != nil {
			return arctype.Header{}, err
		}
		entries = append(entries, entry)
	}
	return arctype.Header{Entries: entries}, nil
}

// decodeEntry reads one 128-byte entry record.
func decodeEntry(d *decoder, i int) (arctype.Entry, error) {
	field := func(name string) string {
		return fmt.Sprintf("entry[%d].%s", i, name)
	}

	start := d.Pos()
	raw, err := d.Bytes(NameSize, field("filename"))
	if err != nil {
		return arctype.Entry{}, err
	}
	name, err := CString(raw)
	if err != nil {
		return arctype.Entry{}, &arctype.FormatError{Offset: start, Field: field("filename"), Err: err}
	}

	var e arctype.Entry
	e.Filename = name
	if e.Reserved1, err = d.Uint32(field("reserved1")); err != nil {
		return arctype.Entry{}, err
	}
	if e.Size, err = d.Uint32(field("size")); err != nil {
		return arctype.Entry{}, err
	}
	if e.Offset, err = d.Uint32(field("offset")); err != nil {
		return arctype.Entry{}, err
	}
	if e.Reserved2, err = d.Uint32(field("reserved2")); err != nil {
		return arctype.Entry{}, err
	}
	return e, nil
}
