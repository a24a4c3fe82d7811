package profiler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vizlab-ci/nbprofiler/internal/browser"
	ltime "github.com/vizlab-ci/nbprofiler/pkg/time"
)

const (
	testCellID   = "cell-1"
	testOutputID = "out-1"
	testTextID   = "txt-1"
)

type executorHarness struct {
	driver  *browser.Mock
	session *SessionMock
	watch   *ltime.TestingWatch
	sleeper ltime.AdvancingSleeper
}

func newExecutorHarness() *executorHarness {
	driver := browser.NewMock()
	driver.ElementsBySelector[CellsSelector] = []browser.Element{browser.MockElement(testCellID)}
	driver.ChildrenBySelector[testCellID] = map[string][]browser.Element{
		OutputCellsSelector: {browser.MockElement(testOutputID)},
	}
	driver.ChildrenBySelector[testOutputID] = map[string][]browser.Element{
		OutputTextSelector: {browser.MockElement(testTextID)},
	}

	watch := &ltime.TestingWatch{Current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return &executorHarness{
		driver:  driver,
		session: &SessionMock{PIDs: []int{100}},
		watch:   watch,
		sleeper: ltime.NewAdvancingSleeper(watch),
	}
}

func (h *executorHarness) newExecutor(spec CellSpec, maxWait time.Duration) *CellExecutor {
	return NewCellExecutor(
		browser.MockElement(testCellID), spec, maxWait, 500*time.Millisecond,
		h.session, h.driver, StaticSampler{CPU: 40, Memory: 60}, h.watch, h.sleeper)
}

// scriptOutputs sets the text the cell's output area shows on successive
// polls.
func (h *executorHarness) scriptOutputs(texts ...string) {
	h.driver.TextQueue[testTextID] = texts
}

func TestExecuteCompletesOnMarker(t *testing.T) {
	h := newExecutorHarness()
	h.scriptOutputs("", "", "DONE")
	h.session.Data = 3 * Megabyte

	e := h.newExecutor(CellSpec{Index: 1}, time.Minute)
	require.NoError(t, e.Execute(context.Background()))

	assert.Equal(t, StatusCompleted, e.Metrics.ExecutionStatus)
	assert.Equal(t, []string{testCellID}, h.driver.RunKeysSent)
	assert.Greater(t, e.Metrics.TotalExecutionTime, 0.0)
	assert.Equal(t, 3.0, e.Metrics.ClientTotalDataReceived)

	clientCPU := e.Metrics.Samples[SampleKey{Source: SourceClient, Metric: MetricCPU}]
	assert.NotEmpty(t, clientCPU.Raw)
	assert.Equal(t, 40.0, clientCPU.Max)
}

func TestExecuteTimesOutWithoutMarker(t *testing.T) {
	h := newExecutorHarness()
	h.scriptOutputs("")

	e := h.newExecutor(CellSpec{Index: 1}, 5*time.Second)
	require.NoError(t, e.Execute(context.Background()))

	assert.Equal(t, StatusTimedOut, e.Metrics.ExecutionStatus)
}

func TestExecuteFailsOnKernelRestart(t *testing.T) {
	h := newExecutorHarness()
	// Baseline 100, one healthy check, then a new PID.
	h.session.PIDs = []int{100, 100, 200}
	// The marker would have appeared, but the kernel dies first.
	h.scriptOutputs("", "DONE")

	e := h.newExecutor(CellSpec{Index: 1}, time.Minute)
	require.NoError(t, e.Execute(context.Background()))

	assert.Equal(t, StatusFailed, e.Metrics.ExecutionStatus)
}

func TestNoSamplingAfterFailure(t *testing.T) {
	h := newExecutorHarness()
	h.session.PIDs = []int{100, 100, 200}
	h.scriptOutputs("")

	e := h.newExecutor(CellSpec{Index: 1}, time.Minute)
	require.NoError(t, e.Execute(context.Background()))

	require.Equal(t, StatusFailed, e.Metrics.ExecutionStatus)
	// One sample from the single in-progress iteration; the final capture
	// after failure must not add more.
	clientCPU := e.Metrics.Samples[SampleKey{Source: SourceClient, Metric: MetricCPU}]
	assert.Len(t, clientCPU.Raw, 1)
}

func TestExecuteMissingBaselinePIDIsHardError(t *testing.T) {
	h := newExecutorHarness()
	h.session.PIDErr = fmt.Errorf("kernel gone")

	e := h.newExecutor(CellSpec{Index: 1}, time.Minute)
	assert.Error(t, e.Execute(context.Background()))
	assert.Equal(t, StatusPending, e.Metrics.ExecutionStatus)
}

func TestKernelTelemetryGapDoesNotAbort(t *testing.T) {
	h := newExecutorHarness()
	h.scriptOutputs("", "DONE")
	h.session.UsageErr = fmt.Errorf("usage endpoint unavailable")

	e := h.newExecutor(CellSpec{Index: 1}, time.Minute)
	require.NoError(t, e.Execute(context.Background()))

	assert.Equal(t, StatusCompleted, e.Metrics.ExecutionStatus)
	kernelCPU := e.Metrics.Samples[SampleKey{Source: SourceKernel, Metric: MetricCPU}]
	assert.Empty(t, kernelCPU.Raw)
	clientCPU := e.Metrics.Samples[SampleKey{Source: SourceClient, Metric: MetricCPU}]
	assert.NotEmpty(t, clientCPU.Raw)
}

func TestSkipProfilingCapturesNothing(t *testing.T) {
	h := newExecutorHarness()
	h.scriptOutputs("", "", "DONE")

	e := h.newExecutor(CellSpec{Index: 1, SkipProfiling: true}, time.Minute)
	require.NoError(t, e.Execute(context.Background()))

	assert.Equal(t, StatusCompleted, e.Metrics.ExecutionStatus)
	for _, key := range SampleKeys() {
		assert.Empty(t, e.Metrics.Samples[key].Raw)
	}
	assert.Zero(t, e.Metrics.ClientTotalDataReceived)
}

func TestVizGatingRequiresStability(t *testing.T) {
	h := newExecutorHarness()
	h.scriptOutputs("DONE")

	vizID := "viz-1"
	// First stability check sees a changing widget, second sees a settled
	// one.
	h.driver.ScreenshotQueue[vizID] = [][]byte{
		[]byte("frame-a"), []byte("frame-b"),
		[]byte("frame-c"), []byte("frame-c"),
	}
	h.session.DetectFunc = func(_ context.Context) error {
		h.session.Viz = NewVizElement(
			browser.MockElement(vizID), h.driver, h.sleeper, 500*time.Millisecond, h.session)
		return nil
	}

	e := h.newExecutor(CellSpec{Index: 1, WaitForViz: true}, time.Minute)
	require.NoError(t, e.Execute(context.Background()))

	assert.Equal(t, StatusCompleted, e.Metrics.ExecutionStatus)
	assert.Equal(t, 1, h.session.Detected)
	// Both stability checks logged their screenshot pairs.
	assert.Equal(t, 4, h.session.Screenshots[1])
}

func TestNoVizCheckWhenNotTagged(t *testing.T) {
	h := newExecutorHarness()
	h.scriptOutputs("DONE")

	e := h.newExecutor(CellSpec{Index: 1, WaitForViz: false}, time.Minute)
	require.NoError(t, e.Execute(context.Background()))

	assert.Equal(t, StatusCompleted, e.Metrics.ExecutionStatus)
	assert.Zero(t, h.session.Detected)
	assert.Empty(t, h.session.Screenshots)
}

func TestVizGatingTimesOutWhenNeverStable(t *testing.T) {
	h := newExecutorHarness()
	h.scriptOutputs("DONE")
	h.session.DetectFunc = func(_ context.Context) error {
		return fmt.Errorf("not rendered yet")
	}

	e := h.newExecutor(CellSpec{Index: 1, WaitForViz: true}, 5*time.Second)
	require.NoError(t, e.Execute(context.Background()))

	assert.Equal(t, StatusTimedOut, e.Metrics.ExecutionStatus)
	assert.Greater(t, h.session.Detected, 0)
}

func TestStatusFinality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		status := rapid.SampledFrom([]ExecutionStatus{
			StatusPending, StatusInProgress, StatusCompleted, StatusFailed, StatusTimedOut,
		}).Draw(t, "status")
		switch status {
		case StatusPending, StatusInProgress:
			assert.False(t, status.IsFinal())
		default:
			assert.True(t, status.IsFinal())
		}
	})
}
