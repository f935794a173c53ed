package types

const (
	// HistoryCapacity is the maximum number of history entries kept per tool id.
	// Older entries are evicted first.
	HistoryCapacity = 10

	// OffloadThreshold is the input size in bytes above which tool execution
	// moves off the calling goroutine.
	OffloadThreshold = 1 << 20

	// MaxHistoryLimit caps the page size accepted by the history tool.
	MaxHistoryLimit = 100
)
