// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"github.com/luxfi/alpenglow/byzantine"
	"github.com/luxfi/alpenglow/economics"
	"github.com/luxfi/alpenglow/network"
	"github.com/luxfi/alpenglow/rotor"
	"github.com/luxfi/alpenglow/types"
)

// ActionKind discriminates the AlpenglowAction tagged union of §6/§9. Every
// variant in the wire-ish enumeration there has exactly one Kind here.
type ActionKind uint8

const (
	ActionVote ActionKind = iota
	ActionByzantineVote
	ActionCertify
	ActionTimeout
	ActionSkipCert
	ActionAdvanceTime

	ActionNetworkPartition
	ActionHealPartition

	ActionFormCoalition
	ActionCoordinateAttack
	ActionAdaptStrategy
	ActionTimingManipulation

	ActionSendMessage
	ActionDeliverMessage
	ActionDropMessage
	ActionInjectNetworkFailure
	ActionRecoverFromFailure
	ActionUpdateLatencyModel
	ActionAdjustBandwidth
	ActionSimulateCongestion

	ActionDistributeRewards
	ActionSlashValidator
	ActionWithdrawRewards
	ActionStakeDeposit
	ActionStakeWithdrawal
	ActionReportSlashing
	ActionUpdateEconomicParameters

	ActionPropagateErasureBlock
	ActionPropagateChunk
	ActionRequestMissingChunks
	ActionReconstructBlock
	ActionAssignRelayNodes

	ActionProposeBlock
	ActionRotateLeader
	ActionUpdateWindow
)

// Action is the closed tagged union every Step call consumes; only the
// fields relevant to Kind are meaningful (§9 "tagged variants over dynamic
// dispatch"). Build one with the ActionXxx constructors below rather than
// populating the struct by hand.
type Action struct {
	Kind ActionKind

	Node, From, To, Propagator, Leader types.NodeId
	Slot, TargetSlot                  types.Slot
	Block                             types.BlockId
	Path                              types.VotePath
	Strategy                          types.Strategy
	Delta                             types.Timestamp

	PartitionA, PartitionB []types.NodeId

	CoalitionIndex      int
	CoalitionMembers    []types.NodeId
	CoalitionAttackType byzantine.CoalitionAttackType

	MessageContent  network.Content
	MessagePriority int
	MessageID       uint64
	Reason          string

	Failure               network.Failure
	FailureID             uint64
	LatencyModel          network.LatencyModel
	BandwidthCeiling      uint64
	CongestionUtilization float64

	Distribution             economics.Distribution
	Severity                 economics.Severity
	Amount                   types.StakeAmount
	VoteA, VoteB             types.Vote
	RewardRate, SlashingRate float64

	RedundancyLevel float64
	Chunk           rotor.ChunkId
	ChunkTargets    []types.NodeId
}

// Step is δ(s, a) → s': the single dispatch point every driver (explicit-
// state checker, property-based harness, simulator) should call. It
// mutates s in place — the pragmatic Go rendition of the model's
// `Option<State>` signature, since every per-action helper it dispatches
// to is already total (inapplicable actions are no-ops, never panics or
// errors; see spec.md §7).
func Step(s *State, a Action) {
	switch a.Kind {
	case ActionVote:
		s.Vote(a.Node, a.Slot, a.Block, a.Path)
	case ActionByzantineVote:
		s.ByzantineVote(a.Node, a.Strategy, a.Slot)
	case ActionCertify:
		s.Certify(a.Slot, a.Path)
	case ActionTimeout:
		s.Timeout(a.Node, a.Slot)
	case ActionSkipCert:
		s.SkipCert(a.Slot)
	case ActionAdvanceTime:
		s.AdvanceTime(a.Delta)

	case ActionNetworkPartition:
		s.NetworkPartition(a.PartitionA, a.PartitionB)
	case ActionHealPartition:
		s.HealPartition()

	case ActionFormCoalition:
		s.FormCoalition(a.CoalitionMembers, a.CoalitionAttackType)
	case ActionCoordinateAttack:
		s.CoordinateAttack(a.CoalitionIndex, a.TargetSlot)
	case ActionAdaptStrategy:
		s.AdaptStrategy(a.Node, a.Strategy)
	case ActionTimingManipulation:
		s.TimingManipulation(a.Delta)

	case ActionSendMessage:
		s.SendMessage(a.From, a.To, a.MessageContent, a.MessagePriority)
	case ActionDeliverMessage:
		s.DeliverMessage(a.MessageID)
	case ActionDropMessage:
		s.DropMessage(a.MessageID, a.Reason)
	case ActionInjectNetworkFailure:
		s.InjectNetworkFailure(a.Failure)
	case ActionRecoverFromFailure:
		s.RecoverFromFailure(a.FailureID)
	case ActionUpdateLatencyModel:
		s.UpdateLatencyModel(a.LatencyModel)
	case ActionAdjustBandwidth:
		s.AdjustBandwidth(a.From, a.To, a.BandwidthCeiling)
	case ActionSimulateCongestion:
		s.SimulateCongestion(a.From, a.To, a.CongestionUtilization)

	case ActionDistributeRewards:
		s.DistributeRewards(a.Distribution)
	case ActionSlashValidator:
		s.SlashValidator(a.Node, a.Severity, a.Slot, a.Reason)
	case ActionWithdrawRewards:
		s.WithdrawRewards(a.Node)
	case ActionStakeDeposit:
		s.StakeDeposit(a.Node, a.Amount)
	case ActionStakeWithdrawal:
		s.StakeWithdrawal(a.Node, a.Amount)
	case ActionReportSlashing:
		s.ReportSlashing(a.VoteA, a.VoteB)
	case ActionUpdateEconomicParameters:
		s.UpdateEconomicParameters(a.RewardRate, a.SlashingRate)

	case ActionPropagateErasureBlock:
		s.PropagateErasureBlock(a.Propagator, a.Block, a.RedundancyLevel)
	case ActionPropagateChunk:
		s.PropagateChunk(a.Block, a.Chunk, a.ChunkTargets)
	case ActionRequestMissingChunks:
		s.RequestMissingChunks(a.Block)
	case ActionReconstructBlock:
		s.ReconstructBlock(a.Node, a.Block)
	case ActionAssignRelayNodes:
		s.AssignRelayNodes(a.Block)

	case ActionProposeBlock:
		s.ProposeBlock(a.Leader, a.Slot, a.Block)
	case ActionRotateLeader:
		s.RotateLeader(a.Slot)
	case ActionUpdateWindow:
		s.UpdateWindow(a.Slot)
	}
}
