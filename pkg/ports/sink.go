package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePlanJSON saves the capture plan as JSON.
	SavePlanJSON(data []byte) error

	// SaveRunJSON saves the extraction run metadata as JSON.
	SaveRunJSON(data []byte) error

	// SaveFrame saves a captured frame image.
	SaveFrame(index int, img image.Image) error
}
