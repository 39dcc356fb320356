// Copyright 2025 go-collatz Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kernel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ajroetker/go-collatz/collatz"
)

const (
	metricsNamespace = "collatz"
	metricsSubsystem = "kernel"
)

// Metrics holds the Prometheus collectors updated by every launch.
type Metrics struct {
	// Lanes counts finished lanes by outcome.
	// Labels: outcome (reached-one, cycle-detected, overflowed, step-limit-exceeded)
	Lanes *prometheus.CounterVec

	// Batches counts launches.
	Batches prometheus.Counter

	// BatchSeconds measures wall time per launch.
	BatchSeconds prometheus.Histogram

	// Steps measures the step count of lanes that reached one.
	Steps prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		Lanes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "lanes_total",
			Help:      "Lanes evaluated, by terminal outcome.",
		}, []string{"outcome"}),
		Batches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "batches_total",
			Help:      "Batches launched.",
		}),
		BatchSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a batch launch.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		Steps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "lane_steps",
			Help:      "Steps taken by lanes that reached one.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 14),
		}),
	}
	// Pre-create every outcome so dashboards see zeros.
	for _, o := range collatz.Outcomes() {
		if o.Terminal() {
			m.Lanes.WithLabelValues(o.String())
		}
	}
	return m
}

func (m *Metrics) observeLane(o collatz.Outcome, steps uint32) {
	m.Lanes.WithLabelValues(o.String()).Inc()
	if o.Success() {
		m.Steps.Observe(float64(steps))
	}
}

func (m *Metrics) observeBatch(elapsed time.Duration) {
	m.Batches.Inc()
	m.BatchSeconds.Observe(elapsed.Seconds())
}
