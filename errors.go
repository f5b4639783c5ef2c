package dsarc

import "github.com/meigma/dsarc/internal/arctype"

// Error types re-exported from internal/arctype.
type (
	// FormatError reports a malformed header. It wraps one of ErrBadMagic,
	// ErrTruncated, ErrUnterminatedName or ErrInvalidName.
	FormatError = arctype.FormatError

	// RangeError reports an entry whose payload lies outside the archive.
	// It matches ErrOutOfRange with errors.Is.
	RangeError = arctype.RangeError

	// IOError reports a failure reading the archive file.
	IOError = arctype.IOError
)

// Sentinel errors re-exported from internal/arctype.
var (
	// ErrBadMagic is returned when the data does not start with the DSARC FL tag.
	ErrBadMagic = arctype.ErrBadMagic

	// ErrTruncated is returned when the header is shorter than it declares.
	ErrTruncated = arctype.ErrTruncated

	// ErrUnterminatedName is returned when a filename field lacks a NUL terminator.
	ErrUnterminatedName = arctype.ErrUnterminatedName

	// ErrInvalidName is returned when a filename is not valid UTF-8.
	ErrInvalidName = arctype.ErrInvalidName

	// ErrOutOfRange is matched by every RangeError.
	ErrOutOfRange = arctype.ErrOutOfRange
)
