package arctype

// Entry describes one file contained in a DSARC archive.
type Entry struct {
	// Filename is the entry name decoded from the fixed-width name field.
	Filename string

	// Size is the payload length in bytes.
	Size uint32

	// Offset is the payload position relative to the start of the archive.
	Offset uint32

	// Reserved1 and Reserved2 are the unnamed fields surrounding size and
	// offset in the entry record. They are kept verbatim and never interpreted.
	Reserved1 uint32
	Reserved2 uint32
}

// End returns the exclusive end offset of the payload.
func (e Entry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Size)
}

// Header is the decoded entry table in declaration order.
type Header struct {
	Entries []Entry
}

// Len returns the number of entries.
func (h Header) Len() int {
	return len(h.Entries)
}
