// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package properties implements the §8 testable properties as pure
// predicates over a *alpenglow.State snapshot. None of them mutate state;
// a checker or test calls them after a sequence of actions to look for a
// violation (tier 3 of the error-handling design in spec.md §7).
package properties

import (
	"github.com/luxfi/alpenglow"
	"github.com/luxfi/alpenglow/stake"
	"github.com/luxfi/alpenglow/types"
)

// Safety: every certificate that exists for a slot is internally
// consistent — every vote sealed into it supports the certificate's block.
// The canonical map already guarantees at most one certificate per slot;
// this predicate catches a corrupted/hand-assembled one.
func Safety(s *alpenglow.State) bool {
	for _, cert := range s.Certificates {
		for _, v := range cert.Votes {
			if v.Block != cert.Block {
				return false
			}
		}
	}
	return true
}

// ByzantineResilience: if byzantine stake is within the 20% threshold,
// every certificate's vote set supports at most one block.
func ByzantineResilience(s *alpenglow.State) bool {
	reg := s.Registry()
	if stake.ByzantineStake(reg) > stake.ByzantineThresholdStake(reg) {
		return true
	}
	for _, cert := range s.Certificates {
		blocks := make(map[types.BlockId]struct{})
		for _, v := range cert.Votes {
			blocks[v.Block] = struct{}{}
		}
		if len(blocks) > 1 {
			return false
		}
	}
	return true
}

// FastPathEfficiency: if honest stake is at least 80% of total, either no
// certificate exists yet or at least one existing certificate is Fast-path.
func FastPathEfficiency(s *alpenglow.State) bool {
	reg := s.Registry()
	if stake.HonestStake(reg) < stake.FastQuorum(reg) {
		return true
	}
	if len(s.Certificates) == 0 {
		return true
	}
	for _, cert := range s.Certificates {
		if cert.Path == types.Fast {
			return true
		}
	}
	return false
}

// Progress: every slot below current_slot has a certificate or a skip
// certificate.
func Progress(s *alpenglow.State) bool {
	for slot := types.Slot(1); slot < s.CurrentSlot; slot++ {
		_, hasCert := s.Certificates[slot]
		_, hasSkip := s.SkipCerts[slot]
		if !hasCert && !hasSkip {
			return false
		}
	}
	return true
}

// HonestNoEquivocation: every honest node's vote sequence has at most one
// block per (slot, path).
func HonestNoEquivocation(s *alpenglow.State) bool {
	for _, node := range s.Nodes {
		if !s.Status[node].IsHonest() {
			continue
		}
		for _, votes := range s.Votes[node] {
			seen := make(map[types.VotePath]types.BlockId)
			hasSeen := make(map[types.VotePath]bool)
			for _, v := range votes {
				if hasSeen[v.Path] && seen[v.Path] != v.Block {
					return false
				}
				seen[v.Path] = v.Block
				hasSeen[v.Path] = true
			}
		}
	}
	return true
}

// fastFinalityBoundMillis and slowFinalityBoundMillis are δ80/δ60 (§6).
const (
	fastFinalityBoundMillis = 500
	slowFinalityBoundMillis = 1000
)

// BoundedFinalization: every recorded finalization time is within
// min(δ80, 2·δ60) of its slot's nominal 1000ms-per-slot deadline.
func BoundedFinalization(s *alpenglow.State) bool {
	bound := types.Timestamp(fastFinalityBoundMillis)
	if alt := types.Timestamp(2 * slowFinalityBoundMillis); alt < bound {
		bound = alt
	}
	for _, f := range s.Ledger {
		nominal := types.Timestamp(f.Slot) * 1000
		if f.FinalizationTime < nominal {
			continue
		}
		if f.FinalizationTime-nominal > bound {
			return false
		}
	}
	return true
}

// RotorAvailability: every installed erasure-coded block is reconstructible
// from currently available chunks.
func RotorAvailability(s *alpenglow.State) bool {
	for block := range s.Rotor.Blocks {
		if !s.Rotor.CanReconstructBlock(block) {
			return false
		}
	}
	return true
}

// LeaderFairness: once the rotation history reaches length 10, no single
// leader appears in more than half its entries.
func LeaderFairness(s *alpenglow.State) bool {
	if len(s.Rotation.History) < 10 {
		return true
	}
	counts := make(map[types.NodeId]int)
	for _, e := range s.Rotation.History {
		counts[e.Leader]++
	}
	limit := len(s.Rotation.History) / 2
	for _, c := range counts {
		if c > limit {
			return false
		}
	}
	return true
}

// EconomicConservation: balances + pool - total_slashed never exceeds the
// original total stake plus the initial reward pool.
func EconomicConservation(s *alpenglow.State, initialTotalStake, initialPool types.StakeAmount) bool {
	var balances types.StakeAmount
	for _, b := range s.Economics.ValidatorBalances {
		balances += b
	}
	sum := balances + s.Economics.RewardsPool
	if sum < s.Economics.TotalSlashed {
		return true
	}
	return sum-s.Economics.TotalSlashed <= initialTotalStake+initialPool
}
