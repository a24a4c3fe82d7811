package profiler

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vizlab-ci/nbprofiler/internal/browser"
	"github.com/vizlab-ci/nbprofiler/internal/generator"
	ltime "github.com/vizlab-ci/nbprofiler/pkg/time"
)

// doneMarkerRegexp finds the completion sentinel anywhere in a rendered
// output line.
var doneMarkerRegexp = regexp.MustCompile(`(?m)^.*` + generator.DoneMarker + `.*$`)

// CellSpec is the static per-cell configuration derived from notebook
// metadata before any execution begins.
type CellSpec struct {
	Index         int
	SkipProfiling bool
	WaitForViz    bool
}

// CellExecutor drives one cell through the browser and decides when it is
// done. Expected outcomes (timeout, kernel restart) become terminal status
// values on the cell's metrics; only environment failures return errors.
type CellExecutor struct {
	cell    browser.Element
	spec    CellSpec
	session Session
	driver  browser.Driver
	sampler ClientSampler
	watch   ltime.Watch
	sleeper ltime.Sleeper

	pollInterval time.Duration
	maxWaitTime  time.Duration

	Metrics *CellMetrics

	baselinePID int
	startedAt   time.Time
	doneFound   bool
}

func NewCellExecutor(
	cell browser.Element,
	spec CellSpec,
	maxWaitTime time.Duration,
	pollInterval time.Duration,
	session Session,
	driver browser.Driver,
	sampler ClientSampler,
	watch ltime.Watch,
	sleeper ltime.Sleeper,
) *CellExecutor {
	return &CellExecutor{
		cell:         cell,
		spec:         spec,
		session:      session,
		driver:       driver,
		sampler:      sampler,
		watch:        watch,
		sleeper:      sleeper,
		pollInterval: pollInterval,
		maxWaitTime:  maxWaitTime,
		Metrics:      NewCellMetrics(spec.Index),
	}
}

// Execute runs the cell and polls until it reaches a final status.
//
// Each iteration checks, in order: elapsed time against the deadline,
// kernel identity against the baseline, and only then the completion
// marker. A cell that never prints its marker still terminates through
// one of the first two exits.
func (e *CellExecutor) Execute(ctx context.Context) error {
	log.Infof("Executing cell %d", e.spec.Index)

	// Execution cannot safely begin without a kernel identity to watch
	// for: a restart would otherwise be indistinguishable from slowness.
	pid, err := e.session.KernelPID(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to get baseline kernel PID for cell %d", e.spec.Index)
	}
	e.baselinePID = pid
	e.startedAt = e.watch.Now()

	if err := e.driver.SendRunKeys(ctx, e.cell); err != nil {
		return errors.Wrapf(err, "failed to issue run command for cell %d", e.spec.Index)
	}
	e.Metrics.ExecutionStatus = StatusInProgress

	first := true
	for {
		if !first {
			e.captureMetrics(ctx)
		}
		first = false

		if e.watch.Now().Sub(e.startedAt) > e.maxWaitTime {
			log.Warnf("Cell %d exceeded max wait time of %s", e.spec.Index, e.maxWaitTime)
			e.Metrics.ExecutionStatus = StatusTimedOut
			break
		}

		if e.kernelRestarted(ctx) {
			log.Warnf("Cell %d kernel restarted mid-execution", e.spec.Index)
			e.Metrics.ExecutionStatus = StatusFailed
			break
		}

		e.sleeper.Sleep(e.pollInterval)

		// Sticky: output may be cleared or scrolled after the marker
		// first appears, so never re-search once found.
		if !e.doneFound {
			e.doneFound = e.lookForDoneMarker(ctx)
		}
		if !e.doneFound {
			log.Debugf("Cell %d DONE statement not found yet...", e.spec.Index)
			continue
		}

		if !e.spec.WaitForViz {
			log.Debugf("Cell %d is not tagged as to wait for viz changes, moving on...", e.spec.Index)
			e.complete()
			break
		}

		if viz := e.session.VizElement(); viz != nil {
			if viz.IsStable(ctx, e.spec.Index) {
				log.Debugf("Cell %d viz element is stable, moving on...", e.spec.Index)
				e.complete()
				break
			}
		} else {
			log.Debug("Looking for the viz element in the page...")
			if err := e.session.DetectVizElement(ctx); err != nil {
				log.Debugf("viz element not detected yet: %s", err)
			}
		}
	}

	e.captureMetrics(ctx)
	e.Metrics.Compute()
	log.Info(e.Metrics.String())
	return nil
}

func (e *CellExecutor) complete() {
	e.Metrics.TotalExecutionTime = e.watch.Now().Sub(e.startedAt).Seconds()
	e.Metrics.ExecutionStatus = StatusCompleted
}

func (e *CellExecutor) kernelRestarted(ctx context.Context) bool {
	pid, err := e.session.KernelPID(ctx)
	if err != nil {
		// A telemetry gap is not evidence of a restart.
		log.Warnf("kernel identity unavailable for cell %d: %s", e.spec.Index, err)
		return false
	}
	return pid != e.baselinePID
}

// captureMetrics records one resource-usage sample. It is a no-op when the
// cell skips profiling or the kernel has died. After a final status it
// additionally settles the network bytes received over the execution
// window.
func (e *CellExecutor) captureMetrics(ctx context.Context) {
	if e.spec.SkipProfiling || e.Metrics.ExecutionStatus == StatusFailed {
		return
	}

	if !e.Metrics.ExecutionStatus.IsFinal() {
		e.Metrics.TotalExecutionTime = e.watch.Now().Sub(e.startedAt).Seconds()
	}

	if cpu, err := e.sampler.CPUPercent(ctx); err != nil {
		log.Warnf("client cpu sample unavailable: %s", err)
	} else {
		e.Metrics.Samples[SampleKey{Source: SourceClient, Metric: MetricCPU}].Append(cpu)
	}
	if mem, err := e.sampler.MemoryPercent(ctx); err != nil {
		log.Warnf("client memory sample unavailable: %s", err)
	} else {
		e.Metrics.Samples[SampleKey{Source: SourceClient, Metric: MetricMemory}].Append(mem)
	}

	if usage, err := e.session.KernelUsage(ctx); err != nil {
		log.Warnf("kernel usage unavailable for cell %d: %s", e.spec.Index, err)
	} else {
		e.Metrics.Samples[SampleKey{Source: SourceKernel, Metric: MetricCPU}].Append(usage.KernelCPU)
		e.Metrics.Samples[SampleKey{Source: SourceKernel, Metric: MetricMemory}].Append(usage.KernelMemory)
	}

	if e.Metrics.ExecutionStatus.IsFinal() {
		end := e.watch.Now()
		start := end.Add(-time.Duration(e.Metrics.TotalExecutionTime * float64(time.Second)))
		e.Metrics.ClientTotalDataReceived = e.session.DataReceivedBetween(start, end) / Megabyte
	}
}

func (e *CellExecutor) lookForDoneMarker(ctx context.Context) bool {
	outputCells, err := e.driver.ElementsWithin(ctx, e.cell, OutputCellsSelector)
	if err != nil {
		log.Warnf("failed to query output cells for cell %d: %s", e.spec.Index, err)
		return false
	}
	if len(outputCells) == 0 {
		log.Debugf("Cell %d has no output cells yet, waiting...", e.spec.Index)
		return false
	}
	for _, outputCell := range outputCells {
		textCells, err := e.driver.ElementsWithin(ctx, outputCell, OutputTextSelector)
		if err != nil {
			log.Warnf("failed to query text outputs for cell %d: %s", e.spec.Index, err)
			continue
		}
		log.Debugf("Found %d text output cells", len(textCells))
		if len(textCells) == 0 {
			continue
		}
		texts := make([]string, 0, len(textCells))
		for _, textCell := range textCells {
			text, err := e.driver.Text(ctx, textCell)
			if err != nil {
				log.Warnf("failed to read output text for cell %d: %s", e.spec.Index, err)
				continue
			}
			texts = append(texts, text)
		}
		if doneMarkerRegexp.MatchString(strings.Join(texts, "\n")) {
			log.Infof("Cell %d DONE statement found!", e.spec.Index)
			return true
		}
	}
	return false
}
