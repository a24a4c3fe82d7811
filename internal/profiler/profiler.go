package profiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vizlab-ci/nbprofiler/internal/browser"
	"github.com/vizlab-ci/nbprofiler/internal/jupyter"
	"github.com/vizlab-ci/nbprofiler/internal/notebook"
	"github.com/vizlab-ci/nbprofiler/internal/params"
	ltime "github.com/vizlab-ci/nbprofiler/pkg/time"
)

var (
	// ErrCellCountMismatch means the rendered page does not match the
	// uploaded notebook. Continuing would attribute measurements to the
	// wrong cells, so the run stops.
	ErrCellCountMismatch = fmt.Errorf("rendered cell count does not match notebook cell count")

	ErrNotebookDidNotLoad = fmt.Errorf("notebook did not load in time after multiple attempts")
)

// NotebookProfiler runs every cell of one uploaded notebook through the
// browser, strictly sequentially, and aggregates the per-cell metrics.
type NotebookProfiler struct {
	cfg     *Config
	driver  browser.Driver
	client  jupyter.Client
	sampler ClientSampler
	watch   ltime.Watch
	sleeper ltime.Sleeper

	notebookPath string
	kernelId     string
	vizElement   *VizElement

	Params      params.Assignment
	Metrics     *NotebookMetrics
	CellResults []*CellMetrics

	skipProfilingIndexes map[int]bool
	waitForVizIndexes    map[int]bool
}

var _ Session = &NotebookProfiler{}

func NewNotebookProfiler(
	cfg *Config,
	driver browser.Driver,
	client jupyter.Client,
	sampler ClientSampler,
	watch ltime.Watch,
	sleeper ltime.Sleeper,
) *NotebookProfiler {
	return &NotebookProfiler{
		cfg:     cfg,
		driver:  driver,
		client:  client,
		sampler: sampler,
		watch:   watch,
		sleeper: sleeper,
	}
}

// Run profiles the notebook at notebookPath, already uploaded to the
// server under its base filename.
func (p *NotebookProfiler) Run(ctx context.Context, notebookPath string, kernelName string) (*NotebookMetrics, error) {
	log.Info("Starting profiling...")
	p.notebookPath = notebookPath
	p.Metrics = NewNotebookMetrics()
	p.CellResults = nil
	p.vizElement = nil

	if err := p.inspectNotebook(); err != nil {
		return nil, err
	}

	kernelId, err := p.client.KernelIDByName(ctx, kernelName)
	if err != nil {
		return nil, err
	}
	p.kernelId = kernelId

	if err := p.openNotebookPage(ctx); err != nil {
		return nil, err
	}
	if err := p.setupNetworkThrottling(ctx); err != nil {
		return nil, err
	}
	if err := p.applyCustomSettings(ctx); err != nil {
		return nil, err
	}
	// Give the page a moment to finish rendering everything.
	p.sleeper.Sleep(p.cfg.PageSettleWait)

	cells, specs, err := p.buildCellSpecs(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.executeCells(ctx, cells, specs); err != nil {
		return nil, err
	}

	p.Metrics.Compute()
	log.Info(p.Metrics.String())
	log.Info("Profiling completed.")
	return p.Metrics, nil
}

// inspectNotebook reads the notebook file ahead of the live run: cell
// count, tag index sets, and the literal parameters.
func (p *NotebookProfiler) inspectNotebook() error {
	nb, err := notebook.Read(p.notebookPath)
	if err != nil {
		return err
	}

	p.skipProfilingIndexes = indexSet(nb.CellIndexesForTag(notebook.TagSkipProfiling))
	p.waitForVizIndexes = indexSet(nb.CellIndexesForTag(notebook.TagWaitForViz))

	p.Params = params.Assignment{}
	if cell := nb.CellForTag(notebook.TagParameters); cell != nil {
		p.Params = params.ParseAssignments(cell.Source.String())
	}

	p.Metrics.TotalCells = len(nb.Cells)
	return nil
}

func indexSet(indexes []int) map[int]bool {
	set := make(map[int]bool, len(indexes))
	for _, index := range indexes {
		set[index] = true
	}
	return set
}

// openNotebookPage navigates to the notebook URL and waits for the
// notebook element, retrying with exponential backoff and jitter.
func (p *NotebookProfiler) openNotebookPage(ctx context.Context) error {
	url := p.client.NotebookURL(p.notebookPath)
	log.Infof("Navigating to %s", url)
	if err := p.driver.Navigate(ctx, url); err != nil {
		return err
	}

	delay := ltime.JitteredDuration(p.cfg.PageLoadInitialDelay)
	for attempt := 1; attempt <= p.cfg.PageLoadRetries; attempt++ {
		if err := p.driver.WaitVisible(ctx, NotebookSelector, delay); err == nil {
			log.Debug("Notebook loaded.")
			return nil
		}
		log.Warnf("Error waiting for notebook to load, retrying... %d/%d.", attempt, p.cfg.PageLoadRetries)
		delay = ltime.JitteredDuration(delay * 2)
	}
	return ErrNotebookDidNotLoad
}

func (p *NotebookProfiler) setupNetworkThrottling(ctx context.Context) error {
	value, ok := p.Params.Get(UINetworkThrottlingParam)
	if !ok {
		log.Debug("No network throttling parameter found, hence no network throttling applied.")
		return nil
	}
	throughput, ok := value.AsFloat()
	if !ok || throughput <= 0 {
		log.Debug("Network throttling parameter is not a positive number, skipping.")
		return nil
	}
	return p.driver.EmulateThrottling(ctx, throughput)
}

func (p *NotebookProfiler) applyCustomSettings(ctx context.Context) error {
	if err := p.driver.SetViewport(ctx, ViewportWidth, ViewportHeight); err != nil {
		return err
	}
	log.Debug("Page viewport set.")

	script := fmt.Sprintf(
		"const style = document.createElement('style'); style.innerHTML = `%s`; document.head.appendChild(style);",
		PageStyleTagContent)
	if err := p.driver.EvalScript(ctx, script); err != nil {
		return err
	}
	log.Debug("Page style added.")
	return nil
}

func (p *NotebookProfiler) buildCellSpecs(ctx context.Context) ([]browser.Element, []CellSpec, error) {
	cells, err := p.driver.Elements(ctx, CellsSelector)
	if err != nil {
		return nil, nil, err
	}
	if len(cells) != p.Metrics.TotalCells {
		return nil, nil, errors.Wrapf(ErrCellCountMismatch,
			"rendered %d, notebook has %d", len(cells), p.Metrics.TotalCells)
	}

	specs := make([]CellSpec, 0, len(cells))
	for i := range cells {
		index := i + 1
		specs = append(specs, CellSpec{
			Index:         index,
			SkipProfiling: p.skipProfilingIndexes[index],
			WaitForViz:    p.waitForVizIndexes[index],
		})
	}
	log.Infof("Number of executable cells in the notebook: %d.", len(specs))
	return cells, specs, nil
}

func (p *NotebookProfiler) executeCells(ctx context.Context, cells []browser.Element, specs []CellSpec) error {
	log.Info("Executing notebook cells...")
	for i, cell := range cells {
		executor := NewCellExecutor(
			cell, specs[i], p.cfg.MaxWaitTime, p.cfg.PollInterval,
			p, p.driver, p.sampler, p.watch, p.sleeper)
		if err := executor.Execute(ctx); err != nil {
			return err
		}
		log.Infof("Cell execution: %s", executor.Metrics.ExecutionStatus)
		p.collectCellMetrics(specs[i], executor.Metrics)

		// One non-completed cell invalidates downstream timing
		// assumptions; stop here rather than measure on top of it.
		if executor.Metrics.ExecutionStatus != StatusCompleted {
			break
		}
		p.sleeper.Sleep(p.cfg.InterCellWait)
	}
	return nil
}

// collectCellMetrics folds a finished cell into the notebook totals.
// Notebook-level statistics are computed over the union of all cells' raw
// samples, not an average of averages.
func (p *NotebookProfiler) collectCellMetrics(spec CellSpec, cellMetrics *CellMetrics) {
	p.CellResults = append(p.CellResults, cellMetrics)
	p.Metrics.ExecutedCells++
	if spec.SkipProfiling {
		return
	}
	p.Metrics.ProfiledCells++
	p.Metrics.TotalExecutionTime += cellMetrics.TotalExecutionTime
	p.Metrics.ClientTotalDataReceived += cellMetrics.ClientTotalDataReceived
	p.Metrics.Samples.Extend(cellMetrics.Samples)
}

// Session implementation: the capability surface handed to executors.

func (p *NotebookProfiler) VizElement() *VizElement {
	return p.vizElement
}

func (p *NotebookProfiler) DetectVizElement(ctx context.Context) error {
	elements, err := p.driver.Elements(ctx, VizElementSelector)
	if err != nil {
		return err
	}
	if len(elements) == 0 {
		return fmt.Errorf("no element matches %q", VizElementSelector)
	}
	p.vizElement = NewVizElement(elements[0], p.driver, p.sleeper, p.cfg.StabilityInterval, p)
	log.Debug("Viz element detected and assigned.")
	return nil
}

func (p *NotebookProfiler) KernelPID(ctx context.Context) (int, error) {
	return p.client.KernelPID(ctx, p.kernelId)
}

func (p *NotebookProfiler) KernelUsage(ctx context.Context) (*jupyter.KernelUsage, error) {
	return p.client.KernelUsage(ctx, p.kernelId)
}

func (p *NotebookProfiler) DataReceivedBetween(start time.Time, end time.Time) float64 {
	return p.driver.DataReceivedBetween(start, end)
}

// LogScreenshots saves stability-check screenshots under a per-notebook,
// per-day directory. Failures are logged and swallowed.
func (p *NotebookProfiler) LogScreenshots(cellIndex int, screenshots [][]byte) {
	if p.cfg.ScreenshotsDir == "" {
		log.Debug("Not logging screenshots.")
		return
	}

	base := strings.TrimSuffix(filepath.Base(p.notebookPath), filepath.Ext(p.notebookPath))
	dir := filepath.Join(p.cfg.ScreenshotsDir, base, p.watch.Now().UTC().Format("2006_01_02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Errorf("An exception occurred during screenshots logging: %s", err)
		return
	}

	prefix := fmt.Sprintf("%d_cell%d", p.watch.Now().UnixNano(), cellIndex)
	for i, screenshot := range screenshots {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", prefix, i))
		if err := os.WriteFile(path, screenshot, 0644); err != nil {
			log.Errorf("An exception occurred during screenshots logging: %s", err)
			return
		}
	}
	log.Debug("Screenshots logged.")
}
