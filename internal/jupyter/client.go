package jupyter

import (
	"context"
	"fmt"
)

var ErrKernelNotFound = fmt.Errorf("no active kernel found for kernel name")

// Client is the JupyterLab REST surface the profiler depends on.
// Communication failures propagate to the caller; they indicate a broken
// profiling environment, not an execution outcome.
type Client interface {
	ListSessions(ctx context.Context) ([]Session, error)
	DeleteSession(ctx context.Context, sessionId string) error
	ClearSessions(ctx context.Context) error

	ListKernels(ctx context.Context) ([]Kernel, error)
	KernelIDByName(ctx context.Context, kernelName string) (string, error)
	RestartKernel(ctx context.Context, kernelId string) error
	KernelUsage(ctx context.Context, kernelId string) (*KernelUsage, error)
	KernelPID(ctx context.Context, kernelId string) (int, error)

	UploadNotebook(ctx context.Context, notebookPath string) error
	DeleteNotebook(ctx context.Context, notebookFilename string) error
	NotebookURL(notebookPath string) string
}
