package header

import (
	"bytes"
	"unicode/utf8"

	"github.com/meigma/dsarc/internal/arctype"
)

// CString decodes a fixed-width, NUL-terminated text field.
//
// The name ends at the first NUL byte; anything after it is padding and is
// ignored, whatever its value. A field without a NUL returns
// arctype.ErrUnterminatedName and text that is not UTF-8 returns
// arctype.ErrInvalidName.
func CString(field []byte) (string, error) {
	n := bytes.IndexByte(field, 0)
	if n < 0 {
		return "", arctype.ErrUnterminatedName
	}
	if !utf8.Valid(field[:n]) {
		return "", arctype.ErrInvalidName
	}
	return string(field[:n]), nil
}
