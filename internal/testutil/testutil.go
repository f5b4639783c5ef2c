// Package testutil builds DSARC FL archive buffers for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const (
	magic       = "DSARC FL"
	preludeSize = 16
	nameSize    = 112
	recordSize  = 128
)

// TestEntry describes a file to place in a generated archive.
type TestEntry struct {
	Name      string
	Data      []byte
	Reserved1 uint32
	Reserved2 uint32
}

// Record is a raw entry record. Name is copied into the 112-byte name field
// as-is, so tests can omit the terminator or add trailing garbage.
type Record struct {
	Name      []byte
	Reserved1 uint32
	Size      uint32
	Offset    uint32
	Reserved2 uint32
}

// NameField returns name followed by a NUL terminator.
func NameField(name string) []byte {
	return append([]byte(name), 0)
}

// EncodeHeader encodes the prelude with the given entry count followed by records.
// count is written verbatim and need not match len(records).
func EncodeHeader(count uint32, records []Record) []byte {
	buf := make([]byte, preludeSize+len(records)*recordSize)
	copy(buf, magic)
	binary.LittleEndian.PutUint32(buf[8:], count)
	for i, r := range records {
		rec := buf[preludeSize+i*recordSize:]
		copy(rec[:nameSize], r.Name)
		binary.LittleEndian.PutUint32(rec[nameSize:], r.Reserved1)
		binary.LittleEndian.PutUint32(rec[nameSize+4:], r.Size)
		binary.LittleEndian.PutUint32(rec[nameSize+8:], r.Offset)
		binary.LittleEndian.PutUint32(rec[nameSize+12:], r.Reserved2)
	}
	return buf
}

// BuildArchive returns a valid archive containing entries, with payloads
// stored back to back after the header in declaration order.
func BuildArchive(tb testing.TB, entries []TestEntry) []byte {
	tb.Helper()

	records := make([]Record, len(entries))
	offset := preludeSize + len(entries)*recordSize
	for i, e := range entries {
		if len(e.Name) >= nameSize {
			tb.Fatalf("testutil: name %q does not fit the name field", e.Name)
		}
		records[i] = Record{
			Name:      NameField(e.Name),
			Reserved1: e.Reserved1,
			Size:      uint32(len(e.Data)), //nolint:gosec // test payloads are small
			Offset:    uint32(offset),      //nolint:gosec // test payloads are small
			Reserved2: e.Reserved2,
		}
		offset += len(e.Data)
	}

	buf := EncodeHeader(uint32(len(entries)), records) //nolint:gosec // test entry counts are small
	for _, e := range entries {
		buf = append(buf, e.Data...)
	}
	return buf
}

// WriteArchive builds an archive and writes it to a file under dir.
func WriteArchive(tb testing.TB, dir, name string, entries []TestEntry) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildArchive(tb, entries), 0o600); err != nil {
		tb.Fatalf("testutil: write archive: %v", err)
	}
	return path
}
