package extract

import "errors"

// Fatal run outcomes. Per-item failures (missing image data, failed encode,
// per-entry decoder error) are never fatal: they are logged, the item is
// skipped and counted, and the run continues.
var (
	// ErrContainerPathUnresolved means no usable container path could be
	// derived from the input. Raised before any open attempt.
	ErrContainerPathUnresolved = errors.New("no usable container path")

	// ErrContainerOpen wraps the decoder error when the container could
	// not be opened.
	ErrContainerOpen = errors.New("container open failed")

	// ErrNoAssets means a full traversal produced zero descriptors.
	ErrNoAssets = errors.New("no assets produced")
)
