package dsarc

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/meigma/dsarc/internal/batch"
)

// ExtractStats summarizes an Extract call.
type ExtractStats struct {
	// Processed is the number of files written.
	Processed int

	// Skipped is the number of files left untouched because they already existed.
	Skipped int

	// TotalBytes is the number of payload bytes written.
	TotalBytes uint64
}

// Extract writes every payload to destDir/<filename>.
//
// destDir and any directories named by entry filenames are created as
// needed. Filenames are used verbatim as slash-separated relative paths;
// writes are confined to destDir, so a name that resolves outside it fails
// the extraction. When several entries share a filename the last one wins.
//
// By default:
//   - Existing files are skipped (use ExtractWithOverwrite to replace them)
//   - Files are written to a temp file and renamed into place
//   - Files get mode 0o644 (use ExtractWithFileMode to change)
//   - Files are written concurrently by runtime.NumCPU workers
func (a *Archive) Extract(ctx context.Context, destDir string, opts ...ExtractOption) (ExtractStats, error) {
	if destDir == "" {
		return ExtractStats{}, errors.New("dsarc: extract: destination directory is empty")
	}
	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return ExtractStats{}, fmt.Errorf("dsarc: create output directory: %w", err)
	}

	sinkOpts := []batch.FileSinkOption{
		batch.WithOverwrite(cfg.overwrite),
		batch.WithDirectWrites(cfg.directWrite),
	}
	if cfg.modeSet {
		sinkOpts = append(sinkOpts, batch.WithFileMode(cfg.mode))
	}
	sink := batch.NewFileSink(destDir, sinkOpts...)

	procOpts := []batch.ProcessorOption{batch.WithWorkers(cfg.workers)}
	if cfg.progress != nil {
		procOpts = append(procOpts, batch.WithProcessorProgress(cfg.progress))
	}
	if a.logger != nil {
		procOpts = append(procOpts, batch.WithProcessorLogger(a.logger))
	}
	proc := batch.NewProcessor(procOpts...)

	items := make([]*batch.Item, len(a.payloads))
	for i, e := range a.header.Entries {
		items[i] = &batch.Item{Filename: e.Filename, Data: a.payloads[i]}
	}

	stats, err := proc.Process(ctx, items, sink)
	out := ExtractStats{
		Processed:  stats.Processed,
		Skipped:    stats.Skipped,
		TotalBytes: stats.TotalBytes,
	}
	if err != nil {
		return out, fmt.Errorf("dsarc: extract: %w", err)
	}
	a.log().Debug("extracted archive", "dir", destDir, "files", out.Processed, "skipped", out.Skipped, "bytes", out.TotalBytes)
	return out, nil
}
