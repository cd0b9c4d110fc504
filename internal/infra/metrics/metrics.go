package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/controller"
)

const namespace = "hyperscale_autoscaler"

// Recorder exports the per-cycle usage view and decisions as Prometheus metrics.
type Recorder struct {
	dataPoints              *prometheus.GaugeVec
	avgCPUPercent           *prometheus.GaugeVec
	movingAvgCPUPercent     *prometheus.GaugeVec
	workersPercent          *prometheus.GaugeVec
	movingAvgWorkersPercent *prometheus.GaugeVec
	currentCores            *prometheus.GaugeVec
	targetCores             *prometheus.GaugeVec
	cyclesTotal             *prometheus.CounterVec
	scaleAppliedTotal       *prometheus.CounterVec
}

var _ controller.Diagnostics = (*Recorder)(nil)

// NewRecorder registers the autoscaler metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	labels := []string{"database", "direction"}

	gauge := func(name, help string) *prometheus.GaugeVec {
		return factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &Recorder{
		dataPoints:              gauge("data_points", "Samples that contributed to the last moving averages."),
		avgCPUPercent:           gauge("avg_cpu_percent", "Newest average CPU percent sample."),
		movingAvgCPUPercent:     gauge("moving_avg_cpu_percent", "Moving average of CPU percent over the window."),
		workersPercent:          gauge("workers_percent", "Newest max worker percent sample."),
		movingAvgWorkersPercent: gauge("moving_avg_workers_percent", "Moving average of worker percent over the window."),
		currentCores:            gauge("current_cores", "vCores of the service objective observed in the last cycle."),
		targetCores:             gauge("target_cores", "vCores the last cycle decided on."),
		cyclesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Evaluation cycles by outcome.",
		}, []string{"database", "direction", "outcome"}),
		scaleAppliedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scale_applied_total",
			Help:      "Service objective changes accepted by the database.",
		}, labels),
	}
}

// RecordCycle updates the gauges from a cycle report. Gauges keep their last value
// when a cycle produced no snapshot.
func (r *Recorder) RecordCycle(_ context.Context, report controller.Report) {
	direction := report.Direction.String()

	r.cyclesTotal.WithLabelValues(report.Database, direction, report.Outcome).Inc()

	if report.Applied {
		r.scaleAppliedTotal.WithLabelValues(report.Database, direction).Inc()
	}

	snap := report.Snapshot
	if snap.DataPoints == 0 {
		return
	}

	r.dataPoints.WithLabelValues(report.Database, direction).Set(float64(snap.DataPoints))
	r.avgCPUPercent.WithLabelValues(report.Database, direction).Set(snap.CPUPercent)
	r.movingAvgCPUPercent.WithLabelValues(report.Database, direction).Set(snap.MovingAvgCPUPercent)
	r.workersPercent.WithLabelValues(report.Database, direction).Set(snap.WorkerPercent)
	r.movingAvgWorkersPercent.WithLabelValues(report.Database, direction).Set(snap.MovingAvgWorkerPercent)

	if report.Current.Cores == 0 {
		return
	}

	r.currentCores.WithLabelValues(report.Database, direction).Set(float64(report.Current.Cores))
	r.targetCores.WithLabelValues(report.Database, direction).Set(float64(report.Target.Cores))
}
