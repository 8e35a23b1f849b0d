package envsensor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Stats are the exporter's own counters. They are kept apart from the sensor
// exposition, which is rendered by hand.
type Stats struct {
	Samples          prometheus.Counter
	SkippedSamples   prometheus.Counter
	ReadFailures     *prometheus.CounterVec
	BaselineHarvests *prometheus.CounterVec
}

// NewStats creates the counters and registers them with reg, if reg is not nil.
func NewStats(reg prometheus.Registerer) *Stats {
	s := &Stats{
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "envexporter_samples_total",
			Help: "Number of sampling passes over all sensors.",
		}),
		SkippedSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "envexporter_samples_skipped_total",
			Help: "Number of sampling requests skipped by the rate limiter.",
		}),
		ReadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "envexporter_sensor_read_failures_total",
			Help: "Number of failed sensor reads, after retries.",
		}, []string{"sensor"}),
		BaselineHarvests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "envexporter_baseline_harvests_total",
			Help: "Number of air quality baseline harvest attempts.",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(s.Samples, s.SkippedSamples, s.ReadFailures, s.BaselineHarvests)
	}
	return s
}

func (s *Stats) readFailed(sensor string) {
	if s == nil {
		return
	}
	s.ReadFailures.WithLabelValues(sensor).Inc()
}

func (s *Stats) harvested(ok bool) {
	if s == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	s.BaselineHarvests.WithLabelValues(result).Inc()
}

func (s *Stats) sampled(skipped bool) {
	if s == nil {
		return
	}
	if skipped {
		s.SkippedSamples.Inc()
		return
	}
	s.Samples.Inc()
}
