package batch

// ProcessStats contains statistics from a batch processing operation.
type ProcessStats struct {
	// Processed is the number of items successfully written to the sink.
	Processed int

	// Skipped is the number of items skipped (ShouldProcess returned false).
	Skipped int

	// TotalBytes is the sum of payload sizes for all processed items.
	TotalBytes uint64
}
