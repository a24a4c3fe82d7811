package jupyter

type Session struct {
	ID     string  `json:"id"`
	Path   string  `json:"path"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Kernel *Kernel `json:"kernel,omitempty"`
}

type Kernel struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ExecutionState string `json:"execution_state"`
}

// KernelUsage is the content payload of the jupyter-resource-usage
// endpoint. Any field may be missing when telemetry is unavailable.
type KernelUsage struct {
	PID          int     `json:"pid"`
	KernelCPU    float64 `json:"kernel_cpu"`
	KernelMemory float64 `json:"kernel_memory"`
	HostCPU      float64 `json:"host_cpu_percent"`
}

type kernelUsageResponse struct {
	Content KernelUsage `json:"content"`
}

type uploadPayload struct {
	Content interface{} `json:"content"`
	Type    string      `json:"type"`
	Format  string      `json:"format"`
}
