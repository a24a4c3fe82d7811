package profiler

import (
	"context"
	"time"

	"github.com/vizlab-ci/nbprofiler/internal/jupyter"
)

// Session is the narrow capability surface a cell executor needs from the
// profiling run that owns it: the shared visualization handle, the kernel
// identity and telemetry, and the network byte counters.
type Session interface {
	VizElement() *VizElement
	DetectVizElement(ctx context.Context) error
	KernelPID(ctx context.Context) (int, error)
	KernelUsage(ctx context.Context) (*jupyter.KernelUsage, error)
	DataReceivedBetween(start time.Time, end time.Time) float64
	LogScreenshots(cellIndex int, screenshots [][]byte)
}
