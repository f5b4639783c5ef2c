package dsarc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/dsarc/internal/testutil"
)

func TestLoadBytes_HelloWorld(t *testing.T) {
	t.Parallel()

	data := testutil.EncodeHeader(1, []testutil.Record{
		{Name: testutil.NameField("hello.txt"), Size: 5, Offset: 144},
	})
	data = append(data, "world"...)

	arc, err := LoadBytes(data)
	require.NoError(t, err)
	require.Equal(t, 1, arc.Len())
	assert.Equal(t, "hello.txt", arc.Entries()[0].Filename)
	assert.Equal(t, []byte("world"), arc.Payload(0))
}

func TestLoadBytes_Empty(t *testing.T) {
	t.Parallel()

	arc, err := LoadBytes(testutil.EncodeHeader(0, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, arc.Len())
	assert.Empty(t, arc.Entries())
	assert.Equal(t, 0, arc.Header().Len())
}

func TestLoadBytes_RoundTrip(t *testing.T) {
	t.Parallel()

	entries := []testutil.TestEntry{
		{Name: "a.txt", Data: []byte("alpha")},
		{Name: "dir/b.bin", Data: bytes.Repeat([]byte{0xAB}, 1000), Reserved1: 1, Reserved2: 2},
		{Name: "empty", Data: nil},
		{Name: "c.txt", Data: []byte("gamma")},
	}
	data := testutil.BuildArchive(t, entries)

	arc, err := LoadBytes(data)
	require.NoError(t, err)
	require.Equal(t, len(entries), arc.Len())
	require.Len(t, arc.Entries(), arc.Len())

	for i, want := range entries {
		got := arc.Entries()[i]
		assert.Equal(t, want.Name, got.Filename)
		assert.Equal(t, uint32(len(want.Data)), got.Size)
		assert.Equal(t, want.Reserved1, got.Reserved1)
		assert.Equal(t, want.Reserved2, got.Reserved2)
		assert.Len(t, arc.Payload(i), int(got.Size))
		assert.True(t, bytes.Equal(want.Data, arc.Payload(i)), "payload %d", i)
		assert.Equal(t, data[got.Offset:got.End()], arc.Payload(i))
	}
}

func TestLoadBytes_PayloadsDoNotAlias(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, []testutil.TestEntry{{Name: "a.txt", Data: []byte("original")}})
	arc, err := LoadBytes(data)
	require.NoError(t, err)

	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, []byte("original"), arc.Payload(0))
	assert.Equal(t, "a.txt", arc.Entries()[0].Filename)
}

func TestLoadBytes_OverlappingAndOutOfOrderRanges(t *testing.T) {
	t.Parallel()

	// Payload region "0123456789" starts right after two records.
	base := uint32(16 + 2*128)
	data := testutil.EncodeHeader(2, []testutil.Record{
		{Name: testutil.NameField("tail"), Offset: base + 6, Size: 4},
		{Name: testutil.NameField("all"), Offset: base, Size: 10},
	})
	data = append(data, "0123456789"...)

	arc, err := LoadBytes(data)
	require.NoError(t, err)
	assert.Equal(t, []byte("6789"), arc.Payload(0))
	assert.Equal(t, []byte("0123456789"), arc.Payload(1))
}

func TestLoadBytes_BadMagic(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, []testutil.TestEntry{{Name: "a.txt", Data: []byte("x")}})
	copy(data, "NOTDSARC")

	_, err := LoadBytes(data)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestLoadBytes_FormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"short prelude", []byte("DSARC FL\x01\x00"), ErrTruncated},
		{"count exceeds records", testutil.EncodeHeader(3, []testutil.Record{{Name: testutil.NameField("a")}}), ErrTruncated},
		{"unterminated name", testutil.EncodeHeader(1, []testutil.Record{{Name: bytes.Repeat([]byte("a"), 112)}}), ErrUnterminatedName},
		{"invalid name", testutil.EncodeHeader(1, []testutil.Record{{Name: []byte{0xff, 0}}}), ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			arc, err := LoadBytes(tt.data)
			assert.Nil(t, arc)
			require.ErrorIs(t, err, tt.want)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
		})
	}
}

func TestLoadBytes_RangeErrors(t *testing.T) {
	t.Parallel()

	headerLen := uint32(16 + 128)
	tests := []struct {
		name   string
		offset uint32
		size   uint32
		extra  int
	}{
		{"size past end", headerLen, 10, 5},
		{"offset past end", headerLen + 100, 1, 5},
		{"max values", 0xffffffff, 0xffffffff, 0},
		{"one byte over", headerLen, 6, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := testutil.EncodeHeader(1, []testutil.Record{
				{Name: testutil.NameField("big.bin"), Offset: tt.offset, Size: tt.size},
			})
			data = append(data, make([]byte, tt.extra)...)

			_, err := LoadBytes(data)
			require.ErrorIs(t, err, ErrOutOfRange)

			var re *RangeError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, 0, re.Index)
			assert.Equal(t, "big.bin", re.Filename)
			assert.Equal(t, tt.offset, re.Offset)
			assert.Equal(t, tt.size, re.Size)
			assert.Equal(t, len(data), re.Len)
		})
	}
}

func TestLoadBytes_RangeExactlyAtEnd(t *testing.T) {
	t.Parallel()

	headerLen := uint32(16 + 128)
	data := testutil.EncodeHeader(1, []testutil.Record{
		{Name: testutil.NameField("end"), Offset: headerLen + 5, Size: 0},
	})
	data = append(data, "abcde"...)

	arc, err := LoadBytes(data)
	require.NoError(t, err)
	assert.Empty(t, arc.Payload(0))
}

func TestLoadBytes_RangeErrorNamesFailingEntry(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, []testutil.TestEntry{
		{Name: "ok.txt", Data: []byte("ok")},
		{Name: "bad.txt", Data: []byte("bad")},
	})
	// Push the second entry's size past the end of the buffer.
	binary.LittleEndian.PutUint32(data[16+128+116:], 1<<20)

	_, err := LoadBytes(data)
	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1, re.Index)
	assert.Equal(t, "bad.txt", re.Filename)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteArchive(t, dir, "arc.dat", []testutil.TestEntry{
		{Name: "a.txt", Data: []byte("alpha")},
	})

	arc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, arc.Len())
	assert.Equal(t, []byte("alpha"), arc.Payload(0))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.dat")
	_, err := Load(path)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_Directory(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir())
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestArchive_LookupAndAll(t *testing.T) {
	t.Parallel()

	arc, err := LoadBytes(testutil.BuildArchive(t, []testutil.TestEntry{
		{Name: "a.txt", Data: []byte("one")},
		{Name: "b.txt", Data: []byte("two")},
		{Name: "a.txt", Data: []byte("three")},
	}))
	require.NoError(t, err)

	e, data, ok := arc.Lookup("a.txt")
	require.True(t, ok)
	assert.Equal(t, "a.txt", e.Filename)
	assert.Equal(t, []byte("one"), data)

	_, _, ok = arc.Lookup("missing")
	assert.False(t, ok)

	var names []string
	for e, data := range arc.All() {
		names = append(names, e.Filename+"="+string(data))
	}
	assert.Equal(t, []string{"a.txt=one", "b.txt=two", "a.txt=three"}, names)

	// Early break stops iteration.
	count := 0
	for range arc.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestLoadBytes_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := LoadBytes(testutil.BuildArchive(t, []testutil.TestEntry{
		{Name: "a.txt", Data: []byte("alpha")},
		{Name: "b.txt", Data: []byte("beta")},
	}), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "filename=a.txt")
	assert.Contains(t, out, "filename=b.txt")
	assert.Contains(t, out, "size=5")
	assert.Equal(t, 2, strings.Count(out, "msg=entry"))
}

func TestLoadBytes_Progress(t *testing.T) {
	t.Parallel()

	var events []ProgressEvent
	_, err := LoadBytes(testutil.BuildArchive(t, []testutil.TestEntry{
		{Name: "a.txt", Data: []byte("alpha")},
		{Name: "b.txt", Data: []byte("beta")},
	}), WithProgress(func(ev ProgressEvent) { events = append(events, ev) }))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, StageLoading, events[1].Stage)
	assert.Equal(t, "b.txt", events[1].Filename)
	assert.Equal(t, 2, events[1].FilesDone)
	assert.Equal(t, 2, events[1].FilesTotal)
	assert.Equal(t, uint64(9), events[1].BytesDone)
	assert.Equal(t, uint64(9), events[1].BytesTotal)
}

func TestErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	_, formatErr := LoadBytes([]byte("garbage garbage garbage"))
	_, ioErr := Load(filepath.Join(t.TempDir(), "nope"))

	var fe *FormatError
	var ie *IOError
	var re *RangeError
	assert.True(t, errors.As(formatErr, &fe))
	assert.False(t, errors.As(formatErr, &ie))
	assert.False(t, errors.As(formatErr, &re))
	assert.True(t, errors.As(ioErr, &ie))
	assert.False(t, errors.As(ioErr, &fe))
}
