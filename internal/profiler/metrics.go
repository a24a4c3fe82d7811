package profiler

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	Kilobyte = 1024
	Megabyte = 1024 * Kilobyte
)

type Source string

const (
	SourceClient = Source("client")
	SourceKernel = Source("kernel")
)

type Metric string

const (
	MetricCPU    = Metric("cpu")
	MetricMemory = Metric("memory")
)

type Stat string

const (
	StatMin  = Stat("min")
	StatMean = Stat("mean")
	StatMode = Stat("mode")
	StatMax  = Stat("max")
)

var (
	Sources = []Source{SourceClient, SourceKernel}
	Metrics = []Metric{MetricCPU, MetricMemory}
	Stats   = []Stat{StatMin, StatMean, StatMode, StatMax}
)

// SampleKey identifies one raw sample series: where the measurement was
// taken and what it measures.
type SampleKey struct {
	Source Source
	Metric Metric
}

// SampleKeys returns the four series keys in their canonical order, the
// order every report column follows.
func SampleKeys() []SampleKey {
	keys := make([]SampleKey, 0, len(Sources)*len(Metrics))
	for _, source := range Sources {
		for _, metric := range Metrics {
			keys = append(keys, SampleKey{Source: source, Metric: metric})
		}
	}
	return keys
}

// Samples is one raw series plus its summary statistics. Statistics are
// zero until Compute runs over a non-empty series.
type Samples struct {
	Raw  []float64
	Min  float64
	Mean float64
	Mode float64
	Max  float64
}

func (s *Samples) Append(value float64) {
	s.Raw = append(s.Raw, value)
}

func (s *Samples) Extend(other *Samples) {
	s.Raw = append(s.Raw, other.Raw...)
}

func (s *Samples) Compute() {
	if len(s.Raw) == 0 {
		return
	}
	s.Min = floats.Min(s.Raw)
	s.Max = floats.Max(s.Raw)
	s.Mean = stat.Mean(s.Raw, nil)

	sorted := make([]float64, len(s.Raw))
	copy(sorted, s.Raw)
	sort.Float64s(sorted)
	s.Mode, _ = stat.Mode(sorted, nil)
}

func (s *Samples) StatValue(st Stat) float64 {
	switch st {
	case StatMin:
		return s.Min
	case StatMean:
		return s.Mean
	case StatMode:
		return s.Mode
	case StatMax:
		return s.Max
	default:
		return 0
	}
}

type SampleSet map[SampleKey]*Samples

func NewSampleSet() SampleSet {
	set := make(SampleSet, len(Sources)*len(Metrics))
	for _, key := range SampleKeys() {
		set[key] = &Samples{}
	}
	return set
}

func (set SampleSet) Compute() {
	for _, samples := range set {
		samples.Compute()
	}
}

func (set SampleSet) Extend(other SampleSet) {
	for key, samples := range other {
		set[key].Extend(samples)
	}
}

// BaseMetrics is the shared shape of cell-level and notebook-level
// measurements.
type BaseMetrics struct {
	TotalExecutionTime      float64 // seconds
	ClientTotalDataReceived float64 // MB
	Samples                 SampleSet
}

func newBaseMetrics() BaseMetrics {
	return BaseMetrics{Samples: NewSampleSet()}
}

func (b *BaseMetrics) Compute() {
	b.Samples.Compute()
}

func (b *BaseMetrics) statsString() string {
	parts := []string{
		fmt.Sprintf("total execution time: %.2f seconds.", b.TotalExecutionTime),
		fmt.Sprintf("client total data received: %.2f MB.", b.ClientTotalDataReceived),
	}
	for _, key := range SampleKeys() {
		for _, st := range Stats {
			parts = append(parts, fmt.Sprintf("%s %s %s usage: %.2f%%.",
				key.Source, st, key.Metric, b.Samples[key].StatValue(st)))
		}
	}
	return strings.Join(parts, " ")
}

type CellMetrics struct {
	BaseMetrics
	CellIndex       int
	ExecutionStatus ExecutionStatus
}

func NewCellMetrics(cellIndex int) *CellMetrics {
	return &CellMetrics{
		BaseMetrics:     newBaseMetrics(),
		CellIndex:       cellIndex,
		ExecutionStatus: StatusPending,
	}
}

func (m *CellMetrics) String() string {
	return fmt.Sprintf("Cell %d: Execution: %s %s", m.CellIndex, m.ExecutionStatus, m.statsString())
}

type NotebookMetrics struct {
	BaseMetrics
	TotalCells    int
	ExecutedCells int
	ProfiledCells int
}

func NewNotebookMetrics() *NotebookMetrics {
	return &NotebookMetrics{BaseMetrics: newBaseMetrics()}
}

func (m *NotebookMetrics) String() string {
	return fmt.Sprintf("Notebook with %d cells, of which %d were correctly executed and %d were profiled. %s",
		m.TotalCells, m.ExecutedCells, m.ProfiledCells, m.statsString())
}
