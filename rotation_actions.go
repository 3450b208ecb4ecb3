// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import "github.com/luxfi/alpenglow/types"

// ProposeBlock implements §4.4 ProposeBlock(leader, slot, block, window):
// validates leader against the active schedule; an invalid leader is a
// no-op. There is no window parameter: the check uses the rotation
// substate's own WindowStart, already implicit in LeaderForSlot.
func (s *State) ProposeBlock(leader types.NodeId, slot types.Slot, block types.BlockId) bool {
	if !s.Rotation.ProposeBlock(leader, slot) {
		s.Log.Debug("block proposal rejected", "leader", leader, "slot", slot, "reason", "not scheduled leader")
		return false
	}
	s.Log.Debug("block proposed", "leader", leader, "slot", slot, "block", block)
	return true
}

// RotateLeader implements the standalone §6 RotateLeader action: a driver
// may call this directly (independent of AdvanceTime's automatic cascade)
// to append the current leader-for-slot to the bounded rotation history.
func (s *State) RotateLeader(slot types.Slot) {
	s.Rotation.RotateLeader(slot)
}

// UpdateWindow implements the standalone §6 UpdateWindow action: installs
// a fresh window at slot and regenerates the schedule via the
// deterministic stake-weighted shuffle (§4.4).
func (s *State) UpdateWindow(slot types.Slot) {
	s.Rotation.UpdateWindow(slot, s.Nodes, s.stakeOf)
}
