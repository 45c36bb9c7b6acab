package measure

import "time"

// Measure collects one metric per component.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the durations of one component.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	MaxDuration() time.Duration
	Count() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
