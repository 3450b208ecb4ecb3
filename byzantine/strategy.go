// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package byzantine implements the tagged algebra of adversary strategies
// (§4.2) and coalition coordination (§4.3), dispatched uniformly against
// the shared types.Vote/Strategy vocabulary.
package byzantine

import "github.com/luxfi/alpenglow/types"

// EmitContext is the minimal view of engine state a strategy needs to
// decide what to emit: the acting node's stake, its accumulated timeout
// count for the slot (AdaptiveBehavior), and the ability to advance the
// logical clock (the only non-AdvanceTime action allowed to do so, per
// TimingAttack — see spec.md §9 "Clock coupling").
type EmitContext interface {
	Stake(node types.NodeId) types.StakeAmount
	TimeoutCount(node types.NodeId, slot types.Slot) uint32
	AdvanceGlobalTime(delta types.Timestamp)
}

// Equivocation emits two conflicting Fast votes for the same slot.
type Equivocation struct{}

func (Equivocation) Name() string { return "Equivocation" }

// RandomVotes emits one deterministic pseudo-random Fast vote.
type RandomVotes struct{}

func (RandomVotes) Name() string { return "RandomVotes" }

// WithholdVotes emits nothing.
type WithholdVotes struct{}

func (WithholdVotes) Name() string { return "WithholdVotes" }

// SelectiveEquivocation equivocates heavily only above a stake threshold on
// targeted slots, and looks honest otherwise.
type SelectiveEquivocation struct {
	MinStakeThreshold types.StakeAmount
	TargetSlots       map[types.Slot]struct{}
}

func (SelectiveEquivocation) Name() string { return "SelectiveEquivocation" }

// AdaptiveBehavior switches between two inner strategies based on this
// node's timeout count for the slot. One level of recursion only.
type AdaptiveBehavior struct {
	Primary             types.Strategy
	Fallback            types.Strategy
	AdaptationThreshold uint32
}

func (AdaptiveBehavior) Name() string { return "AdaptiveBehavior" }

// TimingAttack advances global_time before emitting a single vote on the
// target path. Construct with NewTimingAttack so the Slow default applies.
type TimingAttack struct {
	DelayVotes bool
	MaxDelay   types.Timestamp
	TargetPath types.VotePath
}

func (TimingAttack) Name() string { return "TimingAttack" }

// NewTimingAttack defaults TargetPath to Slow, matching §4.2.
func NewTimingAttack(delayVotes bool, maxDelay types.Timestamp, targetPath *types.VotePath) TimingAttack {
	path := types.Slow
	if targetPath != nil {
		path = *targetPath
	}
	return TimingAttack{DelayVotes: delayVotes, MaxDelay: maxDelay, TargetPath: path}
}

// StakeBasedAttack only activates above a stake threshold, then escalates
// on every third slot. ReserveForCritical is carried from the spec's field
// list but unused by the emission rule itself (§4.2 leaves its consumer
// unspecified beyond the threshold/slot check).
type StakeBasedAttack struct {
	ReserveForCritical  bool
	ActivationThreshold types.StakeAmount
}

func (StakeBasedAttack) Name() string { return "StakeBasedAttack" }

// maxTimingDelay caps TimingAttack's clock advance (§4.2: min(max_delay, 1000)).
const maxTimingDelay = types.Timestamp(1000)

func vote(node types.NodeId, slot types.Slot, block types.BlockId, path types.VotePath, stake types.StakeAmount) types.Vote {
	return types.Vote{Node: node, Slot: slot, Block: block, Path: path, Stake: stake}
}

// Emit dispatches strategy for node at slot, returning the votes it
// produces. Byzantine emissions bypass the honest de-dup guard — that is
// the point (§4.2).
func Emit(ctx EmitContext, node types.NodeId, strategy types.Strategy, slot types.Slot) []types.Vote {
	stake := ctx.Stake(node)

	switch s := strategy.(type) {
	case Equivocation:
		return []types.Vote{
			vote(node, slot, 0, types.Fast, stake),
			vote(node, slot, 1, types.Fast, stake),
		}

	case RandomVotes:
		block := types.BlockId((uint64(node) + uint64(slot)) % 2)
		return []types.Vote{vote(node, slot, block, types.Fast, stake)}

	case WithholdVotes:
		return nil

	case SelectiveEquivocation:
		_, targeted := s.TargetSlots[slot]
		if stake >= s.MinStakeThreshold && targeted {
			votes := make([]types.Vote, 0, 6)
			for _, path := range []types.VotePath{types.Fast, types.Slow} {
				for b := types.BlockId(0); b < 3; b++ {
					votes = append(votes, vote(node, slot, b, path, stake))
				}
			}
			return votes
		}
		return []types.Vote{vote(node, slot, 0, types.Fast, stake)}

	case AdaptiveBehavior:
		if ctx.TimeoutCount(node, slot) >= s.AdaptationThreshold {
			return Emit(ctx, node, s.Fallback, slot)
		}
		return Emit(ctx, node, s.Primary, slot)

	case CoalitionAttack:
		idx := s.memberIndex(node)
		if idx < 0 {
			return nil
		}
		return EmitForMember(s.AttackType, idx, node, slot, stake)

	case TimingAttack:
		if s.DelayVotes {
			delta := s.MaxDelay
			if delta > maxTimingDelay {
				delta = maxTimingDelay
			}
			ctx.AdvanceGlobalTime(delta)
		}
		return []types.Vote{vote(node, slot, 0, s.TargetPath, stake)}

	case StakeBasedAttack:
		if stake < s.ActivationThreshold {
			return nil
		}
		if slot%3 == 0 {
			votes := make([]types.Vote, 0, 3)
			for b := types.BlockId(0); b < 3; b++ {
				votes = append(votes, vote(node, slot, b, types.Fast, stake))
			}
			return votes
		}
		return []types.Vote{vote(node, slot, 1, types.Fast, stake)}

	default:
		return nil
	}
}
