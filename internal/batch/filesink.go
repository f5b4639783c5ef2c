package batch

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission applied to extracted files.
const DefaultFileMode fs.FileMode = 0o644

// FileSink writes items below a destination directory.
//
// By default, files are written to a temporary file in the same directory
// and renamed to the final path on Commit. This ensures that partially
// written files are never visible at the final path.
//
// All filesystem access goes through an os.Root opened on the destination,
// so names that resolve outside of it fail instead of escaping.
type FileSink struct {
	destDir     string
	overwrite   bool
	directWrite bool
	mode        fs.FileMode
}

// FileSinkOption configures a FileSink.
type FileSinkOption func(*FileSink)

// WithOverwrite allows overwriting existing files.
// By default, existing files are skipped.
func WithOverwrite(overwrite bool) FileSinkOption {
	return func(s *FileSink) {
		s.overwrite = overwrite
	}
}

// WithDirectWrites disables temp files and writes directly to the final path.
func WithDirectWrites(enabled bool) FileSinkOption {
	return func(s *FileSink) {
		s.directWrite = enabled
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(mode fs.FileMode) FileSinkOption {
	return func(s *FileSink) {
		s.mode = mode.Perm()
	}
}

// NewFileSink creates a FileSink that writes to destDir.
//
// destDir must exist before the first call to Writer.
func NewFileSink(destDir string, opts ...FileSinkOption) *FileSink {
	s := &FileSink{
		destDir: destDir,
		mode:    DefaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShouldProcess returns false if the file already exists and overwrite is disabled.
func (s *FileSink) ShouldProcess(item *Item) bool {
	if s.overwrite || item.Filename == "" {
		return true
	}
	root, err := os.OpenRoot(s.destDir)
	if err != nil {
		// Let Writer report the failure.
		return true
	}
	defer root.Close()
	// Only an existing file is skipped; other errors surface from Writer.
	_, err = root.Lstat(filepath.FromSlash(item.Filename))
	return err != nil
}

// Writer returns a Committer for the item's destination file.
func (s *FileSink) Writer(item *Item) (Committer, error) {
	if item.Filename == "" {
		return nil, &fs.PathError{Op: "extract", Path: item.Filename, Err: fs.ErrInvalid}
	}
	destRel := filepath.FromSlash(item.Filename)
	destPath := filepath.Join(s.destDir, destRel)

	root, err := os.OpenRoot(s.destDir)
	if err != nil {
		return nil, fmt.Errorf("open destination root %s: %w", s.destDir, err)
	}
	if dir := filepath.Dir(destRel); dir != "." {
		if err := root.MkdirAll(dir, 0o750); err != nil {
			_ = root.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("create directory for %s: %w", destPath, err)
		}
	}

	if s.directWrite {
		file, err := root.OpenFile(destRel, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			_ = root.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("create file %s: %w", destPath, err)
		}
		return &directCommitter{
			destPath: destPath,
			destRel:  destRel,
			file:     file,
			root:     root,
			sink:     s,
		}, nil
	}

	tempFile, tempRel, err := createTempFile(root, filepath.Dir(destRel), ".dsarc-")
	if err != nil {
		_ = root.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("create temp file for %s: %w", destPath, err)
	}

	return &fileCommitter{
		destPath: destPath,
		destRel:  destRel,
		tempFile: tempFile,
		tempRel:  tempRel,
		root:     root,
		sink:     s,
	}, nil
}

// fileCommitter writes to a temp file and renames on Commit.
type fileCommitter struct {
	destPath string
	destRel  string
	tempFile *os.File
	tempRel  string
	root     *os.Root
	sink     *FileSink
}

// Write implements io.Writer.
func (c *fileCommitter) Write(p []byte) (int, error) {
	return c.tempFile.Write(p)
}

// Commit closes the temp file, applies the file mode, and renames to the final path.
func (c *fileCommitter) Commit() error {
	if err := c.tempFile.Close(); err != nil {
		return c.fail(fmt.Errorf("close temp file: %w", err))
	}
	if err := c.root.Chmod(c.tempRel, c.sink.mode); err != nil {
		return c.fail(fmt.Errorf("chmod: %w", err))
	}
	if c.sink.overwrite {
		if info, err := c.root.Lstat(c.destRel); err == nil && info.IsDir() {
			return c.fail(&fs.PathError{Op: "extract", Path: c.destPath, Err: errors.New("is a directory")})
		}
	}
	if err := c.root.Rename(c.tempRel, c.destRel); err != nil {
		return c.fail(fmt.Errorf("rename to %s: %w", c.destPath, err))
	}

	_ = c.root.Close() //nolint:errcheck // best-effort cleanup
	return nil
}

func (c *fileCommitter) fail(err error) error {
	_ = c.root.Remove(c.tempRel) //nolint:errcheck // best-effort cleanup
	_ = c.root.Close()           //nolint:errcheck // best-effort cleanup
	return err
}

// Discard closes and removes the temp file.
func (c *fileCommitter) Discard() error {
	_ = c.tempFile.Close() //nolint:errcheck // we're cleaning up
	if err := c.root.Remove(c.tempRel); err != nil {
		_ = c.root.Close() //nolint:errcheck // best-effort cleanup
		return err
	}
	return c.root.Close()
}

// directCommitter writes directly to the final path.
type directCommitter struct {
	destPath string
	destRel  string
	file     *os.File
	root     *os.Root
	sink     *FileSink
}

// Write implements io.Writer.
func (c *directCommitter) Write(p []byte) (int, error) {
	return c.file.Write(p)
}

// Commit closes the file and applies the file mode.
func (c *directCommitter) Commit() error {
	if err := c.file.Close(); err != nil {
		_ = c.root.Remove(c.destRel) //nolint:errcheck // best-effort cleanup
		_ = c.root.Close()           //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close file: %w", err)
	}
	if err := c.root.Chmod(c.destRel, c.sink.mode); err != nil {
		_ = c.root.Close() //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("chmod: %w", err)
	}

	_ = c.root.Close() //nolint:errcheck // best-effort cleanup
	return nil
}

// Discard closes and removes the file.
func (c *directCommitter) Discard() error {
	_ = c.file.Close() //nolint:errcheck // best-effort cleanup
	if err := c.root.Remove(c.destRel); err != nil {
		_ = c.root.Close() //nolint:errcheck // best-effort cleanup
		return err
	}
	return c.root.Close()
}

func createTempFile(root *os.Root, dir, prefix string) (*os.File, string, error) {
	const attempts = 10
	for range attempts {
		name, err := randomSuffix()
		if err != nil {
			return nil, "", err
		}
		relPath := filepath.Join(dir, prefix+name)
		f, err := root.OpenFile(relPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			return f, relPath, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", errors.New("create temp file: exhausted retries")
}

func randomSuffix() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
