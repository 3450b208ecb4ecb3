// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics bundles the observable counters SPEC_FULL.md's ambient stack
// calls for: pending messages, active certificates/skip-certs, and
// slashing events. Mirrors poll.NewSet's registration style — gauges and
// counters registered against a caller-supplied prometheus.Registerer.
type metrics struct {
	pendingMessages prometheus.Gauge
	certificates    prometheus.Gauge
	skipCerts       prometheus.Gauge
	slashingEvents  prometheus.Counter
}

var (
	errFailedMessageMetric  = fmt.Errorf("alpenglow: failed to register pending_messages metric")
	errFailedCertMetric     = fmt.Errorf("alpenglow: failed to register certificates metric")
	errFailedSkipCertMetric = fmt.Errorf("alpenglow: failed to register skip_certificates metric")
	errFailedSlashingMetric = fmt.Errorf("alpenglow: failed to register slashing_events metric")
)

// WithMetrics registers this state's observable gauges/counters against
// reg. Call once after NewState; a nil metrics set (the default) makes
// every observer call site a no-op.
func (s *State) WithMetrics(reg prometheus.Registerer) error {
	pendingMessages := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "alpenglow_pending_messages",
		Help: "Number of messages currently pending delivery.",
	})
	if err := reg.Register(pendingMessages); err != nil {
		return fmt.Errorf("%w: %w", errFailedMessageMetric, err)
	}

	certificates := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "alpenglow_certificates",
		Help: "Number of slots with an installed certificate.",
	})
	if err := reg.Register(certificates); err != nil {
		return fmt.Errorf("%w: %w", errFailedCertMetric, err)
	}

	skipCerts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "alpenglow_skip_certificates",
		Help: "Number of slots with an installed skip certificate.",
	})
	if err := reg.Register(skipCerts); err != nil {
		return fmt.Errorf("%w: %w", errFailedSkipCertMetric, err)
	}

	slashingEvents := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alpenglow_slashing_events_total",
		Help: "Total number of slashing evidence entries applied.",
	})
	if err := reg.Register(slashingEvents); err != nil {
		return fmt.Errorf("%w: %w", errFailedSlashingMetric, err)
	}

	s.metrics = &metrics{
		pendingMessages: pendingMessages,
		certificates:    certificates,
		skipCerts:       skipCerts,
		slashingEvents:  slashingEvents,
	}
	return nil
}

func (s *State) observeQueue() {
	if s.metrics == nil {
		return
	}
	s.metrics.pendingMessages.Set(float64(len(s.Queue.Pending)))
}

func (s *State) observeCertificates() {
	if s.metrics == nil {
		return
	}
	s.metrics.certificates.Set(float64(len(s.Certificates)))
	s.metrics.skipCerts.Set(float64(len(s.SkipCerts)))
}

func (s *State) observeSlashing() {
	if s.metrics == nil {
		return
	}
	s.metrics.slashingEvents.Inc()
}
