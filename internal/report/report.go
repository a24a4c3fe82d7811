package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vizlab-ci/nbprofiler/internal/params"
	"github.com/vizlab-ci/nbprofiler/internal/profiler"
	ltime "github.com/vizlab-ci/nbprofiler/pkg/time"
)

// Result is everything the CSV needs about one profiled notebook.
type Result struct {
	NotebookPath string
	Params       params.Assignment
	Notebook     *profiler.NotebookMetrics
	Cells        []*profiler.CellMetrics
}

// Writer persists one CSV file per profiled notebook, under a
// per-notebook, per-day directory. An empty base directory disables
// persistence.
type Writer struct {
	dir   string
	watch ltime.Watch
}

func NewWriter(dir string, watch ltime.Watch) *Writer {
	return &Writer{
		dir:   dir,
		watch: watch,
	}
}

// Save writes one row per executed cell plus a final notebook-level row
// whose cell_index and execution_status columns are empty. It returns
// the path of the written file, or "" when persistence is disabled.
func (w *Writer) Save(result *Result) (string, error) {
	if w.dir == "" {
		log.Debug("Not saving metrics.")
		return "", nil
	}

	base := strings.TrimSuffix(filepath.Base(result.NotebookPath), filepath.Ext(result.NotebookPath))
	dir := filepath.Join(w.dir, base, w.watch.Now().UTC().Format("2006_01_02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.WithStack(err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%d_metrics.csv", w.watch.Now().UnixNano()))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(header(result.Params)); err != nil {
		return "", errors.WithStack(err)
	}
	for _, cell := range result.Cells {
		row := w.row(result, &cell.BaseMetrics,
			strconv.Itoa(cell.CellIndex), string(cell.ExecutionStatus))
		if err := cw.Write(row); err != nil {
			return "", errors.WithStack(err)
		}
	}
	if err := cw.Write(w.row(result, &result.Notebook.BaseMetrics, "", "")); err != nil {
		return "", errors.WithStack(err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", errors.WithStack(err)
	}

	log.Infof("Metrics saved successfully to %s", path)
	return path, nil
}

func header(assignment params.Assignment) []string {
	columns := []string{"notebook_filename"}
	for _, param := range assignment {
		columns = append(columns, param.Name+"_param")
	}
	columns = append(columns,
		"cell_index", "execution_status",
		"total_execution_time_metric", "client_total_data_received_metric")
	for _, key := range profiler.SampleKeys() {
		for _, stat := range profiler.Stats {
			columns = append(columns, fmt.Sprintf("%s_%s_%s_metric", key.Source, stat, key.Metric))
		}
	}
	return columns
}

func (w *Writer) row(result *Result, metrics *profiler.BaseMetrics, cellIndex string, status string) []string {
	row := []string{filepath.Base(result.NotebookPath)}
	for _, param := range result.Params {
		row = append(row, param.Value.Render())
	}
	row = append(row, cellIndex, status,
		formatFloat(metrics.TotalExecutionTime),
		formatFloat(metrics.ClientTotalDataReceived))
	for _, key := range profiler.SampleKeys() {
		samples := metrics.Samples[key]
		for _, stat := range profiler.Stats {
			row = append(row, formatFloat(samples.StatValue(stat)))
		}
	}
	return row
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
