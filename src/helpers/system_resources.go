package helpers

import (
	"runtime"

	"jyotish-chart/src/models"
)

const bytesPerMB = 1024 * 1024

// ResourceUsage reports host memory next to the process heap and goroutine
// count. SystemMemoryMB is 0 when the platform lookup fails.
func ResourceUsage() models.MResourceUsage {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return models.MResourceUsage{
		SystemMemoryMB: totalMemoryMB(),
		HeapAllocMB:    float64(ms.HeapAlloc) / bytesPerMB,
		Goroutines:     runtime.NumGoroutine(),
		CPUs:           runtime.NumCPU(),
	}
}
