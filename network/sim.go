// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import "github.com/luxfi/alpenglow/types"

type linkKey struct {
	a, b types.NodeId
}

func newLinkKey(a, b types.NodeId) linkKey {
	if a > b {
		a, b = b, a
	}
	return linkKey{a, b}
}

// Conditions bundles the per-scenario network parameters the original
// model's advanced examples construct together (base latency, jitter,
// packet loss, corruption) rather than leaving them scattered constants.
// See SPEC_FULL.md §4.
type Conditions struct {
	BaseLatency    types.Timestamp
	Jitter         types.Timestamp
	PacketLossRate float64
	CorruptionRate float64
}

// State is the NetworkSimulationState: latency model, packet loss,
// per-link bandwidth ceilings, per-link congestion, and active failures.
type State struct {
	LatencyModel        LatencyModel
	PacketLossRate      float64
	CongestionThreshold float64
	CongestionRecovery  float64
	Bandwidth           map[linkKey]uint64
	Congestion          map[linkKey]float64
	nextFailureID       uint64
	ActiveFailures      []Failure
}

// NewState returns the reference defaults: constant 50-tick latency, 1%
// packet loss, 0.8 congestion threshold, 0.1 recovery rate (§6).
func NewState() *State {
	return &State{
		LatencyModel:        DefaultLatencyModel(),
		PacketLossRate:      0.01,
		CongestionThreshold: 0.8,
		CongestionRecovery:  0.1,
		Bandwidth:           make(map[linkKey]uint64),
		Congestion:          make(map[linkKey]float64),
	}
}

// NewStateFromConditions builds a NetworkSimulationState from a per-scenario
// Conditions bundle instead of the bare §6 defaults: the latency model
// becomes Uniform[base, base+jitter), and corrupted packets are folded into
// the drop rate alongside outright loss, since this model has no separate
// corruption/retransmit path.
func NewStateFromConditions(c Conditions) *State {
	s := NewState()
	s.LatencyModel = UniformModel(c.BaseLatency, c.BaseLatency+c.Jitter)
	s.PacketLossRate = c.PacketLossRate + c.CorruptionRate*(1-c.PacketLossRate)
	return s
}

// UpdateLatencyModel replaces the active latency model.
func (s *State) UpdateLatencyModel(m LatencyModel) {
	s.LatencyModel = m
}

// AdjustBandwidth sets the bandwidth ceiling for a link.
func (s *State) AdjustBandwidth(a, b types.NodeId, ceiling uint64) {
	s.Bandwidth[newLinkKey(a, b)] = ceiling
}

// SimulateCongestion sets a link's congestion utilization directly.
func (s *State) SimulateCongestion(a, b types.NodeId, utilization float64) {
	s.Congestion[newLinkKey(a, b)] = utilization
}

// InjectFailure activates a new failure and returns its id.
func (s *State) InjectFailure(f Failure) uint64 {
	s.nextFailureID++
	f.ID = s.nextFailureID
	s.ActiveFailures = append(s.ActiveFailures, f)
	return f.ID
}

// RecoverFromFailure removes exactly the failure with the given id,
// no-op if unknown (round-trip law in spec.md §8).
func (s *State) RecoverFromFailure(id uint64) bool {
	for i, f := range s.ActiveFailures {
		if f.ID == id {
			s.ActiveFailures = append(s.ActiveFailures[:i], s.ActiveFailures[i+1:]...)
			return true
		}
	}
	return false
}

// Send implements §4.5 SendMessage: partition check, failure scan, latency
// computation, congestion delay, enqueue. Returns the message id and
// whether it was actually enqueued (false means silently dropped).
func (s *State) Send(
	q *Queue,
	partition *types.NetworkPartition,
	from, to types.NodeId,
	content Content,
	priority int,
	now types.Timestamp,
) (uint64, bool) {
	if !partition.SameSide(from, to) {
		return 0, false
	}

	spike := 1.0
	for _, f := range s.ActiveFailures {
		if !f.affectsLink(from, to) {
			continue
		}
		switch f.Kind {
		case LinkFailure, NodeIsolation:
			return 0, false
		case PacketLoss:
			if packetLossHash(from, to, now) < f.Rate {
				return 0, false
			}
		case LatencySpike:
			spike *= f.Multiplier
		}
	}
	if packetLossHash(from, to, now) < s.PacketLossRate {
		return 0, false
	}

	key := newLinkKey(from, to)
	utilization := s.Congestion[key]
	base := s.LatencyModel.baseLatency(from, to, now, utilization)
	total := types.Timestamp(float64(base) * spike)

	if utilization > s.CongestionThreshold {
		total += types.Timestamp(float64(base) * utilization)
	}

	id := q.enqueue(from, to, content, priority, now, now+total)
	return id, true
}
