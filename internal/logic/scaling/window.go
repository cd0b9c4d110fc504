package scaling

import (
	"fmt"
	"time"
)

// Sample is one row of raw resource telemetry.
type Sample struct {
	Timestamp     time.Time
	TierLabel     string
	CPUPercent    float64
	WorkerPercent float64
}

// Snapshot is the windowed view of the newest samples.
type Snapshot struct {
	Timestamp              time.Time
	TierLabel              string
	CPUPercent             float64
	MovingAvgCPUPercent    float64
	WorkerPercent          float64
	MovingAvgWorkerPercent float64
	// DataPoints is the number of samples that contributed to the averages, capped at the window size.
	DataPoints int
}

// Window averages the newest k samples. Samples must be ordered newest first.
// A short history still yields a snapshot; DataPoints tells the engine how much of the window was filled.
func Window(samples []Sample, k int) (Snapshot, error) {
	if k < 1 {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrInvalidWindow, k)
	}

	if len(samples) == 0 {
		return Snapshot{}, ErrNoData
	}

	n := min(k, len(samples))

	var cpuSum, workerSum float64

	for _, s := range samples[:n] {
		cpuSum += s.CPUPercent
		workerSum += s.WorkerPercent
	}

	newest := samples[0]

	return Snapshot{
		Timestamp:              newest.Timestamp,
		TierLabel:              newest.TierLabel,
		CPUPercent:             newest.CPUPercent,
		MovingAvgCPUPercent:    cpuSum / float64(n),
		WorkerPercent:          newest.WorkerPercent,
		MovingAvgWorkerPercent: workerSum / float64(n),
		DataPoints:             n,
	}, nil
}
