// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package stake implements the quorum arithmetic shared by the consensus
// engine and the property oracles: total/fast/slow/byzantine-threshold
// stake, and per-status stake sums over a registry snapshot.
package stake

import "github.com/luxfi/alpenglow/types"

// Default quorum percentages, integer-floor arithmetic throughout.
const (
	FastQuorumPercent  = 80
	SlowQuorumPercent  = 60
	ByzantineThreshold = 20
)

// Registry is the minimal view stake arithmetic needs: every node's weight
// and current status. The engine's node registry satisfies this directly.
type Registry interface {
	Stake(node types.NodeId) types.StakeAmount
	Nodes() []types.NodeId
	Status(node types.NodeId) types.NodeStatus
}

// Total sums the stake of every registered node.
func Total(r Registry) types.StakeAmount {
	var total types.StakeAmount
	for _, n := range r.Nodes() {
		total += r.Stake(n)
	}
	return total
}

// FastQuorum is the absolute stake required for a Fast-path certificate.
func FastQuorum(r Registry) types.StakeAmount {
	return percentOf(Total(r), FastQuorumPercent)
}

// SlowQuorum is the absolute stake required for a Slow-path certificate.
func SlowQuorum(r Registry) types.StakeAmount {
	return percentOf(Total(r), SlowQuorumPercent)
}

// ByzantineThresholdStake is the absolute stake above which Byzantine
// resilience is no longer guaranteed.
func ByzantineThresholdStake(r Registry) types.StakeAmount {
	return percentOf(Total(r), ByzantineThreshold)
}

// QuorumFor returns the absolute stake required for a certificate on path.
func QuorumFor(r Registry, path types.VotePath) types.StakeAmount {
	if path == types.Fast {
		return FastQuorum(r)
	}
	return SlowQuorum(r)
}

// HonestStake sums the stake of every node whose status is Honest.
func HonestStake(r Registry) types.StakeAmount {
	var total types.StakeAmount
	for _, n := range r.Nodes() {
		if r.Status(n).IsHonest() {
			total += r.Stake(n)
		}
	}
	return total
}

// ByzantineStake sums the stake of every node whose status is Byzantine(_).
func ByzantineStake(r Registry) types.StakeAmount {
	var total types.StakeAmount
	for _, n := range r.Nodes() {
		if r.Status(n).IsByzantine() {
			total += r.Stake(n)
		}
	}
	return total
}

// percentOf computes floor(pct * total / 100), matching the reference
// model's integer-floor quorum arithmetic exactly.
func percentOf(total types.StakeAmount, pct uint64) types.StakeAmount {
	return types.StakeAmount((pct * uint64(total)) / 100)
}
