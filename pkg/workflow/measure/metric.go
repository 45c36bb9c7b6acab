package measure

import (
	"sync"
	"time"
)

// DefaultMetric aggregates the runs of one component. A measure shared by several
// executor runs keeps accumulating.
type DefaultMetric struct {
	mu    *sync.Mutex
	runs  int64
	sum   time.Duration
	max   time.Duration
	total time.Duration
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.runs++
	mt.sum += elapsed
	mt.max = max(mt.max, elapsed)
}

func (mt *DefaultMetric) Count() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.runs
}

// SetTotalDuration records the duration of a whole run, on the end component.
func (mt *DefaultMetric) SetTotalDuration(total time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.total = total
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

// AVGDuration is the mean run duration, rounded to its leading unit.
func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.runs == 0 {
		return 0
	}

	return round(mt.sum / time.Duration(mt.runs))
}

// MaxDuration is the slowest run, rounded like AVGDuration.
func (mt *DefaultMetric) MaxDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.max)
}

var precisions = []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond, time.Microsecond}

func round(d time.Duration) time.Duration {
	for _, unit := range precisions {
		if d > unit {
			return d.Round(unit)
		}
	}

	return d
}
