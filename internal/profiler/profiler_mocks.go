package profiler

import (
	"context"
	"time"

	"github.com/vizlab-ci/nbprofiler/internal/jupyter"
)

// SessionMock scripts the session surface for executor tests. PIDs is a
// queue: each KernelPID call consumes one entry and the last entry sticks,
// so a kernel restart is a queue like [100, 100, 200].
type SessionMock struct {
	Viz        *VizElement
	DetectFunc func(ctx context.Context) error
	Detected   int

	PIDs   []int
	PIDErr error

	Usage    *jupyter.KernelUsage
	UsageErr error

	Data        float64
	Screenshots map[int]int
}

var _ Session = &SessionMock{}

func (m *SessionMock) VizElement() *VizElement {
	return m.Viz
}

func (m *SessionMock) DetectVizElement(ctx context.Context) error {
	m.Detected++
	if m.DetectFunc != nil {
		return m.DetectFunc(ctx)
	}
	return nil
}

func (m *SessionMock) KernelPID(_ context.Context) (int, error) {
	if m.PIDErr != nil {
		return 0, m.PIDErr
	}
	if len(m.PIDs) == 0 {
		return 0, nil
	}
	pid := m.PIDs[0]
	if len(m.PIDs) > 1 {
		m.PIDs = m.PIDs[1:]
	}
	return pid, nil
}

func (m *SessionMock) KernelUsage(_ context.Context) (*jupyter.KernelUsage, error) {
	if m.UsageErr != nil {
		return nil, m.UsageErr
	}
	if m.Usage == nil {
		return &jupyter.KernelUsage{}, nil
	}
	return m.Usage, nil
}

func (m *SessionMock) DataReceivedBetween(_ time.Time, _ time.Time) float64 {
	return m.Data
}

func (m *SessionMock) LogScreenshots(cellIndex int, screenshots [][]byte) {
	if m.Screenshots == nil {
		m.Screenshots = make(map[int]int)
	}
	m.Screenshots[cellIndex] += len(screenshots)
}
