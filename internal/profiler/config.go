package profiler

import (
	"time"

	lconfig "github.com/vizlab-ci/nbprofiler/pkg/config"
)

// JupyterLab DOM selectors and page tweaks.
const (
	// NotebookSelector matches the notebook root element once the page
	// has loaded.
	NotebookSelector = ".jp-Notebook"

	// CellsSelector matches the rendered code cells of the notebook.
	CellsSelector = ".jp-WindowedPanel-viewport>.lm-Widget.jp-Cell.jp-CodeCell.jp-Notebook-cell"

	// OutputCellsSelector matches a cell's output wrappers.
	OutputCellsSelector = ".lm-Widget.lm-Panel.jp-Cell-outputWrapper"

	// OutputTextSelector matches the text output areas inside an output
	// wrapper.
	OutputTextSelector = ".lm-Widget.jp-RenderedText.jp-mod-trusted.jp-OutputArea-output"

	// VizElementSelector matches the rendered visualization widget.
	VizElementSelector = ".jdaviz.imviz"

	// PageStyleTagContent disables the viewer's pulsing animation, which
	// would otherwise keep screenshots from ever matching.
	PageStyleTagContent = ".viewer-label.pulse {animation: none !important;}"

	// UINetworkThrottlingParam is the notebook parameter carrying the
	// download throughput to emulate, in bytes per second.
	UINetworkThrottlingParam = "ui_network_throttling"

	// The viewport is tall enough to render the whole notebook without
	// scrollbars.
	ViewportWidth  = 2000
	ViewportHeight = 20000
)

type Config struct {
	// PollInterval is the fixed wait between completion polls.
	PollInterval time.Duration `env:"PROFILER_POLL_INTERVAL" envDefault:"500ms"`
	// StabilityInterval separates the two screenshots of a stability
	// check.
	StabilityInterval time.Duration `env:"PROFILER_STABILITY_INTERVAL" envDefault:"500ms"`
	// MaxWaitTime bounds a single cell's execution.
	MaxWaitTime time.Duration `env:"PROFILER_MAX_WAIT_TIME" envDefault:"2m"`
	// InterCellWait settles the page between cells.
	InterCellWait time.Duration `env:"PROFILER_INTER_CELL_WAIT" envDefault:"2s"`
	// PageSettleWait runs once after the notebook page loads.
	PageSettleWait time.Duration `env:"PROFILER_PAGE_SETTLE_WAIT" envDefault:"5s"`

	PageLoadRetries      int           `env:"PROFILER_PAGE_LOAD_RETRIES" envDefault:"5"`
	PageLoadInitialDelay time.Duration `env:"PROFILER_PAGE_LOAD_INITIAL_DELAY" envDefault:"10s"`

	// ScreenshotsDir enables stability-check screenshot logging when set.
	ScreenshotsDir string `env:"PROFILER_SCREENSHOTS_DIR"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
