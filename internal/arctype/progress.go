package arctype

// ProgressEvent represents a progress update during loading or extraction.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Filename is the entry currently being processed, if applicable.
	Filename string

	// BytesDone is the number of payload bytes completed so far.
	BytesDone uint64

	// BytesTotal is the total payload bytes for the operation.
	BytesTotal uint64

	// FilesDone is the number of entries completed.
	FilesDone int

	// FilesTotal is the total number of entries.
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for loading and extraction.
const (
	// StageLoading indicates payloads are being copied out of the archive buffer.
	StageLoading ProgressStage = iota

	// StageExtracting indicates payloads are being written to disk.
	StageExtracting
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageLoading:
		return "loading"
	case StageExtracting:
		return "extracting"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
// Implementations must be safe for concurrent calls.
type ProgressFunc func(ProgressEvent)
