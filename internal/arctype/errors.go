package arctype

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by FormatError and RangeError.
var (
	// ErrBadMagic is returned when the archive does not start with the DSARC FL tag.
	ErrBadMagic = errors.New("dsarc: bad magic")

	// ErrTruncated is returned when the header ends before a field is complete.
	ErrTruncated = errors.New("dsarc: truncated header")

	// ErrUnterminatedName is returned when a filename field has no NUL terminator.
	ErrUnterminatedName = errors.New("dsarc: unterminated filename")

	// ErrInvalidName is returned when a filename is not valid UTF-8.
	ErrInvalidName = errors.New("dsarc: invalid filename encoding")

	// ErrOutOfRange is matched by every RangeError.
	ErrOutOfRange = errors.New("dsarc: payload out of range")
)

// FormatError reports a structurally invalid header.
type FormatError struct {
	// Offset is the byte position of the field that failed to decode.
	Offset int
	// Field names the field being decoded ("magic", "entry_count", "entry[3].filename", ...).
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dsarc: format error at 0x%x (%s): %v", e.Offset, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// RangeError reports an entry whose payload lies outside the archive buffer.
type RangeError struct {
	Index    int
	Filename string
	Offset   uint32
	Size     uint32
	// Len is the length of the archive buffer.
	Len int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("dsarc: entry %d (%q): range [%d, %d) exceeds archive length %d",
		e.Index, e.Filename, e.Offset, uint64(e.Offset)+uint64(e.Size), e.Len)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// IOError reports a failure reading the archive from storage.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("dsarc: read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
