package dsarc

import "github.com/opencontainers/go-digest"

// EntryInfo describes one entry together with a digest of its content.
type EntryInfo struct {
	// Index is the entry's position in the header.
	Index int

	Entry

	// Digest is the sha256 digest of the payload.
	Digest digest.Digest
}

// Inspect returns per-entry information in declaration order.
func (a *Archive) Inspect() []EntryInfo {
	infos := make([]EntryInfo, len(a.payloads))
	for i, e := range a.header.Entries {
		infos[i] = EntryInfo{
			Index:  i,
			Entry:  e,
			Digest: digest.FromBytes(a.payloads[i]),
		}
	}
	return infos
}
