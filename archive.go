package dsarc

import (
	"bytes"
	"iter"
	"log/slog"
	"os"

	"github.com/meigma/dsarc/internal/arctype"
	"github.com/meigma/dsarc/internal/header"
	"github.com/meigma/dsarc/internal/sizing"
)

// Re-export types from internal/arctype for the public API.
type (
	// Entry describes one file in the archive.
	Entry = arctype.Entry

	// Header is the archive's entry table in declaration order.
	Header = arctype.Header
)

// Magic is the tag at the start of every DSARC FL archive.
const Magic = header.Magic

// Archive is a fully loaded DSARC FL archive.
//
// Payloads are aligned with the header: Payload(i) holds the content of
// Entries()[i]. An Archive owns its payloads; they do not alias the buffer it
// was loaded from. Archives are read-only after loading and safe for
// concurrent use.
type Archive struct {
	header   Header
	payloads [][]byte
	logger   *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// Load reads the archive file at path and loads it with LoadBytes.
//
// Failures to open or read the file are returned as *IOError.
func Load(path string, opts ...Option) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return LoadBytes(data, opts...)
}

// LoadBytes decodes the header in data and copies out every payload.
//
// A malformed header returns *FormatError. An entry whose range
// [Offset, Offset+Size) does not fit in data returns *RangeError.
// data is not retained.
func LoadBytes(data []byte, opts ...Option) (*Archive, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	a := &Archive{logger: cfg.logger}

	h, err := header.Parse(data)
	if err != nil {
		return nil, err
	}

	var total uint64
	for i, e := range h.Entries {
		if !sizing.Within(uint64(e.Offset), uint64(e.Size), len(data)) {
			return nil, &RangeError{Index: i, Filename: e.Filename, Offset: e.Offset, Size: e.Size, Len: len(data)}
		}
		total += uint64(e.Size)
	}

	payloads := make([][]byte, len(h.Entries))
	var done uint64
	for i, e := range h.Entries {
		a.log().Debug("entry", "filename", e.Filename, "offset", e.Offset, "size", e.Size)
		payloads[i] = bytes.Clone(data[e.Offset:e.End()])
		done += uint64(e.Size)
		if cfg.progress != nil {
			cfg.progress(ProgressEvent{
				Stage:      StageLoading,
				Filename:   e.Filename,
				BytesDone:  done,
				BytesTotal: total,
				FilesDone:  i + 1,
				FilesTotal: len(h.Entries),
			})
		}
	}

	a.header = h
	a.payloads = payloads
	a.log().Debug("archive loaded", "entries", len(h.Entries), "bytes", total)
	return a, nil
}

// Header returns the decoded entry table.
// The returned value shares its entry slice with the archive and must be
// treated as immutable.
func (a *Archive) Header() Header {
	return a.header
}

// Entries returns the entries in declaration order.
// The returned slice must be treated as immutable.
func (a *Archive) Entries() []Entry {
	return a.header.Entries
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.payloads)
}

// Payload returns the content of the i-th entry.
// The returned slice is owned by the archive and must be treated as immutable.
// Payload panics if i is out of range, like a slice index.
func (a *Archive) Payload(i int) []byte {
	return a.payloads[i]
}

// Lookup returns the first entry named filename and its content.
func (a *Archive) Lookup(filename string) (Entry, []byte, bool) {
	for i, e := range a.header.Entries {
		if e.Filename == filename {
			return e, a.payloads[i], true
		}
	}
	return Entry{}, nil, false
}

// All returns an iterator over entries and their payloads in declaration order.
func (a *Archive) All() iter.Seq2[Entry, []byte] {
	return func(yield func(Entry, []byte) bool) {
		for i, e := range a.header.Entries {
			if !yield(e, a.payloads[i]) {
				return
			}
		}
	}
}
