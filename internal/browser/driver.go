package browser

import (
	"context"
	"time"
)

// Element is an opaque handle to a rendered DOM element.
type Element interface {
	ID() string
}

// Driver is the browser surface the profiler depends on. Every call is a
// synchronous round-trip; transport failures surface as errors.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	Elements(ctx context.Context, selector string) ([]Element, error)
	ElementsWithin(ctx context.Context, parent Element, selector string) ([]Element, error)
	Click(ctx context.Context, el Element) error
	SendRunKeys(ctx context.Context, el Element) error
	Text(ctx context.Context, el Element) (string, error)
	Screenshot(ctx context.Context, el Element) ([]byte, error)

	EvalScript(ctx context.Context, script string) error
	SetViewport(ctx context.Context, width int64, height int64) error
	EmulateThrottling(ctx context.Context, downloadBytesPerSecond float64) error

	// DataReceivedBetween reports bytes received by the page between the
	// two wall-clock instants, from the browser's network event stream.
	DataReceivedBetween(start time.Time, end time.Time) float64

	Close() error
}
