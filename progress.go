package dsarc

import "github.com/meigma/dsarc/internal/arctype"

// Re-export progress types from internal/arctype.
type (
	// ProgressEvent represents a progress update during loading or extraction.
	ProgressEvent = arctype.ProgressEvent

	// ProgressStage identifies the current phase of an operation.
	ProgressStage = arctype.ProgressStage

	// ProgressFunc receives progress updates. It must be safe for concurrent calls.
	ProgressFunc = arctype.ProgressFunc
)

// Re-export progress stage constants.
const (
	StageLoading    = arctype.StageLoading
	StageExtracting = arctype.StageExtracting
)
