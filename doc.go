// Package dsarc reads DSARC FL archives, the asset container used by NIS
// games such as Disgaea 6.
//
// An archive is a fixed-layout header listing every contained file by name,
// size and offset, followed by the raw file contents. Loading decodes the
// header and copies each payload out of the archive buffer:
//
//	arc, err := dsarc.Load("script.dat")
//	if err != nil {
//	    return err
//	}
//	for entry, data := range arc.All() {
//	    fmt.Println(entry.Filename, len(data))
//	}
//
// Extract writes every payload below a directory:
//
//	stats, err := arc.Extract(ctx, "out", dsarc.ExtractWithOverwrite(true))
//
// Errors are typed: *IOError for storage failures, *FormatError for a
// malformed header and *RangeError for payloads that lie outside the archive.
package dsarc
