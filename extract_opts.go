package dsarc

import "io/fs"

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	overwrite   bool
	directWrite bool
	mode        fs.FileMode
	modeSet     bool
	workers     int
	progress    ProgressFunc
}

// ExtractWithOverwrite allows overwriting existing files.
// By default, existing files are skipped and counted in ExtractStats.Skipped.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(c *extractConfig) {
		c.overwrite = overwrite
	}
}

// ExtractWithDirectWrites writes files in place instead of through a temp
// file and rename. This is faster but leaves partial files on failure.
func ExtractWithDirectWrites(enabled bool) ExtractOption {
	return func(c *extractConfig) {
		c.directWrite = enabled
	}
}

// ExtractWithFileMode sets the permission bits of extracted files (default 0o644).
func ExtractWithFileMode(mode fs.FileMode) ExtractOption {
	return func(c *extractConfig) {
		c.mode = mode
		c.modeSet = true
	}
}

// ExtractWithWorkers sets the number of files written concurrently.
// Values < 0 force serial writes. Zero uses runtime.NumCPU.
func ExtractWithWorkers(n int) ExtractOption {
	return func(c *extractConfig) {
		c.workers = n
	}
}

// ExtractWithProgress sets a callback that receives StageExtracting events.
func ExtractWithProgress(fn ProgressFunc) ExtractOption {
	return func(c *extractConfig) {
		c.progress = fn
	}
}
