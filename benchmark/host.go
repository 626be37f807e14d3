package benchmark

import (
	"runtime"

	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a benchmark ran on.
type HostInfo struct {
	OS           string  `json:"os"`
	Arch         string  `json:"arch"`
	CPUModel     string  `json:"cpu_model,omitempty"`
	CPUMhz       float64 `json:"cpu_mhz,omitempty"`
	LogicalCores int     `json:"logical_cores,omitempty"`
	MemoryTotal  uint64  `json:"memory_total,omitempty"`
}

// GetHostInfo collects what it can about the host. Fields that cannot be
// read are left empty.
func GetHostInfo() *HostInfo {
	info := &HostInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if stats, err := cpu.Info(); err == nil && len(stats) > 0 {
		info.CPUModel = stats[0].ModelName
		info.CPUMhz = stats[0].Mhz
	} else if err != nil {
		logging.VPrint(logging.DEBUG, "failed to read cpu info", logging.LogFormat{"err": err})
	}

	info.LogicalCores = runtime.NumCPU()
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.LogicalCores = n
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = vm.Total
	} else {
		logging.VPrint(logging.DEBUG, "failed to read memory info", logging.LogFormat{"err": err})
	}
	return info
}
