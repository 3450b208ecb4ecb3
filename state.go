// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package alpenglow is the consensus state machine: one coherent state type
// and a transition relation over it. Every subsystem (stake arithmetic,
// message queue, Rotor, leader rotation, Byzantine strategies, economics)
// reads and writes a disjoint region of State; actions are the only way
// State changes — see Step.
package alpenglow

import (
	"github.com/luxfi/log"

	"github.com/luxfi/alpenglow/byzantine"
	"github.com/luxfi/alpenglow/economics"
	"github.com/luxfi/alpenglow/network"
	"github.com/luxfi/alpenglow/rotation"
	"github.com/luxfi/alpenglow/rotor"
	"github.com/luxfi/alpenglow/types"
)

// Reference constants (§6).
const (
	TicksPerSlot            = 10
	DefaultSlotHorizon      = 5
	DefaultTimeoutThreshold = 3
	SkipCertNodePercent     = 60
)

// State is the full S of δ(s, a) → s'. It aggregates every subsystem's
// substate; nothing outside Step (and the per-action helpers it calls)
// mutates it.
type State struct {
	// Node registry (§3).
	Nodes  []types.NodeId
	Stake  map[types.NodeId]types.StakeAmount
	Status map[types.NodeId]types.NodeStatus

	// Consensus substate.
	Votes        map[types.NodeId]map[types.Slot][]types.Vote
	Certificates map[types.Slot]types.Certificate
	SkipCerts    map[types.Slot]types.SkipCertificate
	Ledger       []types.FinalizedBlock
	Timeouts     map[types.NodeId]map[types.Slot]*types.TimeoutInfo

	GlobalTime  types.Timestamp
	CurrentSlot types.Slot
	SlotHorizon types.Slot

	Partition *types.NetworkPartition

	Network network.State
	Queue   network.Queue

	Rotor    rotor.State
	Rotation rotation.State

	Economics *economics.State

	Coalitions      []byzantine.Coalition
	CoalitionStates []byzantine.State

	// ErrorLog holds tier-2 "local recoverable failures" (§7): reported by
	// the helper that detected them but absorbed here so Step never stalls.
	ErrorLog []string

	// Log is the structured logger every action helper reports no-ops,
	// slashing, and skip-certs through (SPEC_FULL.md §2). Defaults to a
	// no-op logger; attach a real one with WithLogger.
	Log log.Logger

	// metrics is nil until WithMetrics attaches a registry; every observer
	// call site guards on it being non-nil.
	metrics *metrics
}

// NewState is the initial constructor from (nodes, stake_distribution):
// every map is pre-populated for slots 1..=slotHorizon, matching the
// lifecycle rule in §3.
func NewState(nodes []types.NodeId, stakeDistribution map[types.NodeId]types.StakeAmount, slotHorizon types.Slot) *State {
	if slotHorizon == 0 {
		slotHorizon = DefaultSlotHorizon
	}

	stakeCopy := make(map[types.NodeId]types.StakeAmount, len(nodes))
	status := make(map[types.NodeId]types.NodeStatus, len(nodes))
	votes := make(map[types.NodeId]map[types.Slot][]types.Vote, len(nodes))
	timeouts := make(map[types.NodeId]map[types.Slot]*types.TimeoutInfo, len(nodes))

	for _, n := range nodes {
		stakeCopy[n] = stakeDistribution[n]
		status[n] = types.HonestStatus()

		votes[n] = make(map[types.Slot][]types.Vote, slotHorizon)
		timeouts[n] = make(map[types.Slot]*types.TimeoutInfo, slotHorizon)
		for slot := types.Slot(1); slot <= slotHorizon; slot++ {
			votes[n][slot] = nil
			timeouts[n][slot] = &types.TimeoutInfo{Threshold: DefaultTimeoutThreshold}
		}
	}

	s := &State{
		Nodes:        nodes,
		Stake:        stakeCopy,
		Status:       status,
		Votes:        votes,
		Certificates: make(map[types.Slot]types.Certificate),
		SkipCerts:    make(map[types.Slot]types.SkipCertificate),
		Timeouts:     timeouts,
		CurrentSlot:  1,
		SlotHorizon:  slotHorizon,
		Network:      *network.NewState(),
		Queue:        *network.NewQueue(),
		Rotor:        *rotor.NewState(),
		Economics:    economics.NewState(nodes, func(n types.NodeId) types.StakeAmount { return stakeCopy[n] }, 0, 0.05, 0.1),
		Log:          log.NewNoOpLogger(),
	}
	s.Rotation = *rotation.NewState(rotation.DefaultWindowSize, rotation.DefaultFinalityDepth, rotation.Shuffle(1, nodes, s.stakeOf))
	return s
}

// NewStateWithScenario builds a State the same way NewState does, but with
// the network and economic substates seeded from per-scenario Conditions
// and Params bundles (SPEC_FULL.md §4) instead of the bare §6 defaults —
// the construction path an advanced-scenario driver uses to vary network
// and economic behavior independently of the reference constants.
func NewStateWithScenario(
	nodes []types.NodeId,
	stakeDistribution map[types.NodeId]types.StakeAmount,
	slotHorizon types.Slot,
	conditions network.Conditions,
	econParams economics.Params,
) *State {
	s := NewState(nodes, stakeDistribution, slotHorizon)
	s.Network = *network.NewStateFromConditions(conditions)
	s.Economics = economics.NewStateFromParams(nodes, s.stakeOf, econParams)
	return s
}

func (s *State) stakeOf(n types.NodeId) types.StakeAmount { return s.Stake[n] }

// NodeRegistry adapts State to stake.Registry. A method can't share State's
// Stake field name, hence the separate adapter type.
type NodeRegistry struct{ s *State }

func (r NodeRegistry) Stake(n types.NodeId) types.StakeAmount { return r.s.Stake[n] }
func (r NodeRegistry) Nodes() []types.NodeId                  { return r.s.Nodes }
func (r NodeRegistry) Status(n types.NodeId) types.NodeStatus { return r.s.Status[n] }

// Registry returns the stake.Registry view of this state.
func (s *State) Registry() NodeRegistry { return NodeRegistry{s} }

func (s *State) ledgerHasSlot(slot types.Slot) bool {
	for _, f := range s.Ledger {
		if f.Slot == slot {
			return true
		}
	}
	return false
}

func (s *State) logError(msg string) {
	s.ErrorLog = append(s.ErrorLog, msg)
}

// WithLogger attaches a structured logger, replacing the no-op default
// installed by NewState. Returns s for chaining with WithMetrics.
func (s *State) WithLogger(l log.Logger) *State {
	s.Log = l
	return s
}
