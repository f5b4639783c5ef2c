package arctype

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	err := error(&FormatError{Offset: 0x10, Field: "entry[0].filename", Err: ErrUnterminatedName})
	assert.ErrorIs(t, err, ErrUnterminatedName)
	assert.NotErrorIs(t, err, ErrBadMagic)
	assert.Contains(t, err.Error(), "0x10")
	assert.Contains(t, err.Error(), "entry[0].filename")
}

func TestRangeError(t *testing.T) {
	err := error(&RangeError{Index: 2, Filename: "a.bin", Offset: 100, Size: 50, Len: 120})
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, `dsarc: entry 2 ("a.bin"): range [100, 150) exceeds archive length 120`, err.Error())
}

func TestIOError(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "x.dat", Err: fs.ErrNotExist}
	err := error(&IOError{Path: "x.dat", Err: cause})
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
}

func TestEntryEnd(t *testing.T) {
	e := Entry{Offset: 0xffffffff, Size: 0xffffffff}
	assert.Equal(t, uint64(0x1fffffffe), e.End())
}

func TestProgressStageString(t *testing.T) {
	assert.Equal(t, "loading", StageLoading.String())
	assert.Equal(t, "extracting", StageExtracting.String())
	assert.Equal(t, "unknown", ProgressStage(99).String())
}
