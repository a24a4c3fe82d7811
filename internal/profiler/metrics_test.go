package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSampleKeysOrder(t *testing.T) {
	var got []SampleKey
	got = append(got, SampleKeys()...)
	want := []SampleKey{
		{Source: SourceClient, Metric: MetricCPU},
		{Source: SourceClient, Metric: MetricMemory},
		{Source: SourceKernel, Metric: MetricCPU},
		{Source: SourceKernel, Metric: MetricMemory},
	}
	assert.Equal(t, want, got)
}

func TestSamplesCompute(t *testing.T) {
	s := &Samples{}
	s.Append(4)
	s.Append(1)
	s.Append(4)
	s.Append(3)
	s.Compute()

	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 4.0, s.Mode)
	assert.Equal(t, 4.0, s.Max)
}

func TestSamplesComputeEmptyIsNoop(t *testing.T) {
	s := &Samples{}
	s.Compute()
	assert.Zero(t, s.Min)
	assert.Zero(t, s.Max)
}

func TestSamplesComputeLeavesRawOrder(t *testing.T) {
	// Mode needs sorted input, but the raw series must keep its
	// chronological order.
	s := &Samples{Raw: []float64{5, 2, 9, 2}}
	s.Compute()
	assert.Equal(t, []float64{5, 2, 9, 2}, s.Raw)
	assert.Equal(t, 2.0, s.Mode)
}

func TestSamplesComputeBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Float64Range(0, 100), 1, 50).Draw(t, "raw")
		s := &Samples{Raw: raw}
		s.Compute()
		assert.LessOrEqual(t, s.Min, s.Mean)
		assert.LessOrEqual(t, s.Mean, s.Max)
		assert.LessOrEqual(t, s.Min, s.Mode)
		assert.LessOrEqual(t, s.Mode, s.Max)
	})
}

func TestSampleSetExtend(t *testing.T) {
	a := NewSampleSet()
	b := NewSampleSet()

	key := SampleKey{Source: SourceKernel, Metric: MetricMemory}
	a[key].Append(1)
	a[key].Append(2)
	b[key].Append(3)
	a.Extend(b)

	assert.Equal(t, []float64{1, 2, 3}, a[key].Raw)
}

func TestNewCellMetricsStartsPending(t *testing.T) {
	m := NewCellMetrics(3)
	require.NotNil(t, m)
	assert.Equal(t, 3, m.CellIndex)
	assert.Equal(t, StatusPending, m.ExecutionStatus)
	for _, key := range SampleKeys() {
		require.NotNil(t, m.Samples[key])
	}
}
