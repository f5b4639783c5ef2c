// Package header decodes the DSARC FL header into an entry table.
//
// The header is a 16-byte prelude (magic tag, entry count, reserved word)
// followed by fixed 128-byte entry records. All integers are little-endian.
// Decoding is a pure function over a byte slice and never performs I/O.
package header
