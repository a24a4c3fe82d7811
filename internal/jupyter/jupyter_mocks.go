package jupyter

import (
	"context"
	"fmt"
)

// Mock is an in-memory Client for tests. Kernel PIDs are served from the
// PIDs queue so a test can simulate a kernel restart mid-execution.
type Mock struct {
	Sessions  []Session
	Kernels   []Kernel
	Usage     *KernelUsage
	UsageErr  error
	PIDs      []int
	Uploaded  []string
	Deleted   []string
	Restarted []string
	BaseUrl   string
}

var _ Client = &Mock{}

func (m *Mock) ListSessions(_ context.Context) ([]Session, error) {
	return m.Sessions, nil
}

func (m *Mock) DeleteSession(_ context.Context, sessionId string) error {
	remaining := make([]Session, 0, len(m.Sessions))
	for _, s := range m.Sessions {
		if s.ID != sessionId {
			remaining = append(remaining, s)
		}
	}
	m.Sessions = remaining
	return nil
}

func (m *Mock) ClearSessions(ctx context.Context) error {
	for _, s := range m.Sessions {
		if err := m.DeleteSession(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mock) ListKernels(_ context.Context) ([]Kernel, error) {
	return m.Kernels, nil
}

func (m *Mock) KernelIDByName(_ context.Context, kernelName string) (string, error) {
	for _, kernel := range m.Kernels {
		if kernel.Name == kernelName {
			return kernel.ID, nil
		}
	}
	return "", ErrKernelNotFound
}

func (m *Mock) RestartKernel(_ context.Context, kernelId string) error {
	m.Restarted = append(m.Restarted, kernelId)
	return nil
}

func (m *Mock) KernelUsage(_ context.Context, _ string) (*KernelUsage, error) {
	if m.UsageErr != nil {
		return nil, m.UsageErr
	}
	if m.Usage == nil {
		return &KernelUsage{}, nil
	}
	return m.Usage, nil
}

func (m *Mock) KernelPID(_ context.Context, _ string) (int, error) {
	if len(m.PIDs) == 0 {
		return 0, fmt.Errorf("no PID configured")
	}
	pid := m.PIDs[0]
	if len(m.PIDs) > 1 {
		m.PIDs = m.PIDs[1:]
	}
	return pid, nil
}

func (m *Mock) UploadNotebook(_ context.Context, notebookPath string) error {
	m.Uploaded = append(m.Uploaded, notebookPath)
	return nil
}

func (m *Mock) DeleteNotebook(_ context.Context, notebookFilename string) error {
	m.Deleted = append(m.Deleted, notebookFilename)
	return nil
}

func (m *Mock) NotebookURL(notebookPath string) string {
	return fmt.Sprintf("%s/lab/tree/%s/", m.BaseUrl, notebookPath)
}
