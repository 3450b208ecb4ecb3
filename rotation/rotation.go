// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rotation implements per-slot leader scheduling and window
// rollover: a deterministic stake-weighted pseudo-shuffle regenerates the
// schedule at each window boundary.
package rotation

import (
	"sort"

	"github.com/luxfi/alpenglow/types"
)

// HistoryCap bounds the rotation history the spec calls "~100" (§3).
const HistoryCap = 100

// DefaultWindowSize and DefaultFinalityDepth are the §6 reference values.
const (
	DefaultWindowSize    = 10
	DefaultFinalityDepth = 2
)

// Entry is one (slot, leader) pair in the bounded rotation history.
type Entry struct {
	Slot   types.Slot
	Leader types.NodeId
}

// State is WindowInfo + LeaderRotation combined: the window bounds, the
// active leader schedule, and a bounded rotation history.
type State struct {
	WindowStart   types.Slot
	WindowSize    uint32
	FinalityDepth uint32
	Schedule      []types.NodeId
	History       []Entry
}

// NewState installs the first window starting at slot 1 with the given
// initial schedule (already shuffled by the caller, e.g. via Shuffle).
func NewState(windowSize, finalityDepth uint32, schedule []types.NodeId) *State {
	return &State{
		WindowStart:   1,
		WindowSize:    windowSize,
		FinalityDepth: finalityDepth,
		Schedule:      schedule,
	}
}

// LeaderForSlot is get_leader_for_slot: leader_schedule[(slot-window_start)
// mod len(schedule)].
func (s *State) LeaderForSlot(slot types.Slot) (types.NodeId, bool) {
	if len(s.Schedule) == 0 {
		return 0, false
	}
	offset := uint64(slot-s.WindowStart) % uint64(len(s.Schedule))
	return s.Schedule[offset], true
}

// RotateLeader appends the (slot, leader-for-slot) pair to the bounded
// history, front-dropping at HistoryCap.
func (s *State) RotateLeader(slot types.Slot) {
	leader, ok := s.LeaderForSlot(slot)
	if !ok {
		return
	}
	s.History = append(s.History, Entry{Slot: slot, Leader: leader})
	if len(s.History) > HistoryCap {
		s.History = s.History[len(s.History)-HistoryCap:]
	}
}

// NeedsRollover reports whether slot has crossed the current window's end.
func (s *State) NeedsRollover(slot types.Slot) bool {
	return uint64(slot) >= uint64(s.WindowStart)+uint64(s.WindowSize)
}

// UpdateWindow installs a fresh window starting at slot and regenerates
// the leader schedule via the deterministic stake-weighted shuffle.
func (s *State) UpdateWindow(slot types.Slot, nodes []types.NodeId, stakeOf func(types.NodeId) types.StakeAmount) {
	s.WindowStart = slot
	s.Schedule = Shuffle(slot, nodes, stakeOf)
}

// Shuffle is the deterministic stake-weighted pseudo-shuffle of §4.4: order
// nodes by the integer key (seed*stake*node_id) mod 1000, descending, with
// seed = window_start. Ties break on ascending node id to stay deterministic.
func Shuffle(seed types.Slot, nodes []types.NodeId, stakeOf func(types.NodeId) types.StakeAmount) []types.NodeId {
	type keyed struct {
		node types.NodeId
		key  uint64
	}
	out := make([]keyed, len(nodes))
	for i, n := range nodes {
		out[i] = keyed{
			node: n,
			key:  (uint64(seed) * uint64(stakeOf(n)) * uint64(n)) % 1000,
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].key != out[j].key {
			return out[i].key > out[j].key
		}
		return out[i].node < out[j].node
	})
	schedule := make([]types.NodeId, len(out))
	for i, k := range out {
		schedule[i] = k.node
	}
	return schedule
}

// ProposeBlock validates that leader is the scheduled leader for slot; an
// invalid leader is a no-op (returns false, caller does not mutate).
func (s *State) ProposeBlock(leader types.NodeId, slot types.Slot) bool {
	scheduled, ok := s.LeaderForSlot(slot)
	return ok && scheduled == leader
}
