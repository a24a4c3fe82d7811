package profiler

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ClientSampler reads resource usage of the machine driving the browser.
type ClientSampler interface {
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
}

// HostSampler samples the local host.
type HostSampler struct{}

var _ ClientSampler = HostSampler{}

func NewHostSampler() HostSampler {
	return HostSampler{}
}

func (HostSampler) CPUPercent(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(percentages) == 0 {
		return 0, fmt.Errorf("no cpu percentage reported")
	}
	return percentages[0], nil
}

func (HostSampler) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// StaticSampler returns fixed values, for tests.
type StaticSampler struct {
	CPU    float64
	Memory float64
}

var _ ClientSampler = StaticSampler{}

func (s StaticSampler) CPUPercent(_ context.Context) (float64, error) {
	return s.CPU, nil
}

func (s StaticSampler) MemoryPercent(_ context.Context) (float64, error) {
	return s.Memory, nil
}
