// Package batch writes archive payloads to a Sink, optionally in parallel.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/meigma/dsarc/internal/arctype"
)

// parallelMinItems is the minimum number of items worth spreading over workers.
const parallelMinItems = 2

// Processor writes batches of items to a sink.
type Processor struct {
	workers  int // 0 = auto, <0 = serial, >0 = fixed count
	progress arctype.ProgressFunc
	logger   *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (p *Processor) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithWorkers sets the number of workers for parallel processing.
// Values < 0 force serial processing. Zero uses runtime.NumCPU.
// Values > 0 force a specific worker count.
func WithWorkers(n int) ProcessorOption {
	return func(p *Processor) {
		p.workers = n
	}
}

// WithProcessorProgress sets a callback for StageExtracting events.
func WithProcessorProgress(fn arctype.ProgressFunc) ProcessorOption {
	return func(p *Processor) {
		p.progress = fn
	}
}

// WithProcessorLogger sets the logger for batch processing operations.
// If not set, logging is disabled.
func WithProcessorLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a new batch processor.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process writes items to the sink.
//
// When several items share a filename only the last one is written, which
// matches writing them one after another in order. Items are filtered through
// sink.ShouldProcess before any writing starts. Processing stops on the first
// error or when ctx is canceled.
func (p *Processor) Process(ctx context.Context, items []*Item, sink Sink) (ProcessStats, error) {
	var stats ProcessStats
	items = p.dedupe(items)

	toProcess := make([]*Item, 0, len(items))
	var total uint64
	for _, item := range items {
		if !sink.ShouldProcess(item) {
			p.log().Debug("skipping existing file", "filename", item.Filename)
			stats.Skipped++
			continue
		}
		toProcess = append(toProcess, item)
		total += uint64(len(item.Data))
	}
	if len(toProcess) == 0 {
		return stats, nil
	}

	workers := p.workerCount(len(toProcess))
	p.log().Debug("batch processing", "items", len(toProcess), "workers", workers)

	// mu serializes stats updates and progress callbacks so events arrive in
	// increasing order.
	var mu sync.Mutex
	write := func(item *Item) error {
		if err := writeItem(item, sink); err != nil {
			return fmt.Errorf("batch: %s: %w", item.Filename, err)
		}
		mu.Lock()
		defer mu.Unlock()
		stats.Processed++
		stats.TotalBytes += uint64(len(item.Data))
		if p.progress != nil {
			p.progress(arctype.ProgressEvent{
				Stage:      arctype.StageExtracting,
				Filename:   item.Filename,
				BytesDone:  stats.TotalBytes,
				BytesTotal: total,
				FilesDone:  stats.Processed,
				FilesTotal: len(toProcess),
			})
		}
		return nil
	}

	if workers <= 1 {
		for _, item := range toProcess {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := write(item); err != nil {
				return stats, err
			}
		}
		return stats, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, item := range toProcess {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return write(item)
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return stats, err
}

// workerCount resolves the configured worker count for n items.
func (p *Processor) workerCount(n int) int {
	if p.workers < 0 || n < parallelMinItems {
		return 1
	}
	workers := p.workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return min(workers, n)
}

// dedupe drops items whose destination is declared again later. Names are
// compared after cleaning, so "a.txt" and "./a.txt" name the same file.
func (p *Processor) dedupe(items []*Item) []*Item {
	last := make(map[string]int, len(items))
	for i, item := range items {
		last[destKey(item.Filename)] = i
	}
	if len(last) == len(items) {
		return items
	}
	out := make([]*Item, 0, len(last))
	for i, item := range items {
		if last[destKey(item.Filename)] != i {
			p.log().Debug("duplicate filename, later entry wins", "filename", item.Filename)
			continue
		}
		out = append(out, item)
	}
	return out
}

// destKey returns the cleaned destination path for a filename.
func destKey(filename string) string {
	return filepath.Clean(filepath.FromSlash(filename))
}

// writeItem writes one payload and commits it, discarding on failure.
func writeItem(item *Item, sink Sink) error {
	w, err := sink.Writer(item)
	if err != nil {
		return err
	}
	if _, err := w.Write(item.Data); err != nil {
		_ = w.Discard() //nolint:errcheck // best-effort cleanup
		return err
	}
	return w.Commit()
}
