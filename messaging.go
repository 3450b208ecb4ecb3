// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"github.com/luxfi/alpenglow/byzantine"
	"github.com/luxfi/alpenglow/network"
	"github.com/luxfi/alpenglow/types"
)

// SendMessage implements §4.5 SendMessage: partition check, failure scan,
// latency computation, congestion delay, enqueue. Returns the new
// message's id and whether it was actually enqueued (false means it was
// silently dropped by the partition or a failure injection).
func (s *State) SendMessage(from, to types.NodeId, content network.Content, priority int) (uint64, bool) {
	id, ok := s.Network.Send(&s.Queue, s.Partition, from, to, content, priority, s.GlobalTime)
	if !ok {
		s.Log.Debug("dropping message", "from", from, "to", to, "reason", "partition or failure injection")
		return 0, false
	}
	s.observeQueue()
	return id, true
}

// DeliverMessage implements §4.5 DeliverMessage(id): no-op if id names no
// pending message; else dequeues, appends to the delivered log, and
// applies its content to the consensus substate.
func (s *State) DeliverMessage(id uint64) bool {
	msg, ok := s.Queue.Deliver(id, s.GlobalTime)
	if !ok {
		return false
	}
	defer s.observeQueue()

	switch msg.Content.Kind {
	case network.VoteContent:
		v := msg.Content.Vote
		for _, existing := range s.Votes[v.Node][v.Slot] {
			if existing.SameDedupKey(v) {
				return true
			}
		}
		s.Votes[v.Node][v.Slot] = append(s.Votes[v.Node][v.Slot], v)

	case network.CertificateContent:
		s.Certificates[msg.Content.Certificate.Slot] = msg.Content.Certificate
		s.observeCertificates()

	case network.SkipCertificateContent:
		s.SkipCerts[msg.Content.SkipCertificate.Slot] = msg.Content.SkipCertificate
		s.observeCertificates()

	case network.CoalitionCoordinationContent:
		idx := msg.Content.CoalitionIndex
		if idx >= 0 && idx < len(s.CoalitionStates) {
			instr := msg.Content.Instruction
			byzantine.ApplyInstruction(&s.CoalitionStates[idx], instr.Phase, instr.Activate, instr.Deactivate, instr.Abort)
		}

	case network.GossipContent, network.HeartbeatContent:
		// side-effect-free on consensus state; still logged to the
		// delivered queue above.
	}
	return true
}

// DropMessage implements §4.5 DropMessage(id, reason): removes a pending
// message, no-op if unknown.
func (s *State) DropMessage(id uint64, reason string) bool {
	ok := s.Queue.Drop(id)
	if ok {
		s.Log.Debug("dropping message", "id", id, "reason", reason)
		s.observeQueue()
	}
	return ok
}

// InjectNetworkFailure activates a new failure injection and returns its id.
func (s *State) InjectNetworkFailure(f network.Failure) uint64 {
	id := s.Network.InjectFailure(f)
	s.Log.Debug("network failure injected", "id", id, "kind", f.Kind)
	return id
}

// RecoverFromFailure removes exactly the failure with the given id;
// InjectNetworkFailure then RecoverFromFailure on that id is the identity
// on ActiveFailures (§8 round-trip law).
func (s *State) RecoverFromFailure(id uint64) bool {
	return s.Network.RecoverFromFailure(id)
}

// UpdateLatencyModel replaces the active network latency model.
func (s *State) UpdateLatencyModel(m network.LatencyModel) {
	s.Network.UpdateLatencyModel(m)
}

// AdjustBandwidth sets the bandwidth ceiling for the a-b link.
func (s *State) AdjustBandwidth(a, b types.NodeId, ceiling uint64) {
	s.Network.AdjustBandwidth(a, b, ceiling)
}

// SimulateCongestion sets the a-b link's congestion utilization directly.
func (s *State) SimulateCongestion(a, b types.NodeId, utilization float64) {
	s.Network.SimulateCongestion(a, b, utilization)
}
