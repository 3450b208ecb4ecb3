// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package types holds the primitive identifiers and record types shared by
// every Alpenglow subsystem: node and slot identifiers, votes, certificates,
// and node status. Nothing in this package mutates state — it is the
// vocabulary the engine, network, rotor, rotation, byzantine, and economics
// packages all speak.
package types

import "fmt"

// NodeId identifies a validator. Opaque and small; not a cryptographic hash.
type NodeId uint32

// Slot is a monotone scheduling unit.
type Slot uint32

// BlockId identifies a proposed block within a slot.
type BlockId uint32

// StakeAmount is a validator's weight, denominated in the same unit as the
// registry's stake distribution.
type StakeAmount uint64

// Timestamp is the logical, monotone clock used throughout the model. It is
// never wall-clock time.
type Timestamp uint64

// VotePath is the dual-path voting lane a vote was cast on.
type VotePath uint8

const (
	Fast VotePath = iota
	Slow
)

func (p VotePath) String() string {
	switch p {
	case Fast:
		return "Fast"
	case Slow:
		return "Slow"
	default:
		return fmt.Sprintf("VotePath(%d)", uint8(p))
	}
}

// Strategy is the behavior a Byzantine node dispatches on ByzantineVote. It
// is implemented by the byzantine package; kept as an interface here so
// types has no dependency on byzantine (NodeStatus needs to reference it,
// byzantine needs to reference NodeId/Slot/StakeAmount from this package).
type Strategy interface {
	// Name identifies the strategy variant, used for hashing/logging and for
	// the Byzantine(Equivocation) status transition on Critical slashing.
	Name() string
}

// NodeStatusKind discriminates the NodeStatus tagged union.
type NodeStatusKind uint8

const (
	Honest NodeStatusKind = iota
	ByzantineStatus
	Crashed
)

// NodeStatus is the tagged union {Honest, Byzantine(Strategy), Crashed{since}}.
// Only one of Strategy/Since is meaningful, selected by Kind.
type NodeStatus struct {
	Kind     NodeStatusKind
	Strategy Strategy
	Since    Timestamp
}

func HonestStatus() NodeStatus { return NodeStatus{Kind: Honest} }

func ByzantineNodeStatus(s Strategy) NodeStatus {
	return NodeStatus{Kind: ByzantineStatus, Strategy: s}
}

func CrashedStatus(since Timestamp) NodeStatus {
	return NodeStatus{Kind: Crashed, Since: since}
}

func (s NodeStatus) IsHonest() bool    { return s.Kind == Honest }
func (s NodeStatus) IsByzantine() bool { return s.Kind == ByzantineStatus }
func (s NodeStatus) IsCrashed() bool   { return s.Kind == Crashed }

func (s NodeStatus) String() string {
	switch s.Kind {
	case Honest:
		return "Honest"
	case ByzantineStatus:
		name := "?"
		if s.Strategy != nil {
			name = s.Strategy.Name()
		}
		return fmt.Sprintf("Byzantine(%s)", name)
	case Crashed:
		return fmt.Sprintf("Crashed{since=%d}", s.Since)
	default:
		return "Unknown"
	}
}

// Vote is a single node's attribution of support for a block, on a path, at
// a slot. Stake is denormalized onto the vote at emission time.
type Vote struct {
	Node  NodeId
	Slot  Slot
	Block BlockId
	Path  VotePath
	Stake StakeAmount
}

// voteDedupKey identifies a vote for honest dedup purposes: (block, path). Two votes
// from the same honest node with the same key are the same vote.
type voteDedupKey struct {
	Block BlockId
	Path  VotePath
}

func (v Vote) dedupKey() voteDedupKey {
	return voteDedupKey{Block: v.Block, Path: v.Path}
}

// SameDedupKey reports whether v and other would collide under the
// honest-no-equivocation dedup rule.
func (v Vote) SameDedupKey(other Vote) bool {
	return v.dedupKey() == other.dedupKey()
}

// Certificate is the proof that a block reached quorum on a path at a slot.
type Certificate struct {
	Slot       Slot
	Block      BlockId
	Path       VotePath
	Votes      []Vote
	TotalStake StakeAmount
}

// SkipCertificate is the proof that a slot is being passed over.
type SkipCertificate struct {
	Slot         Slot
	TimeoutVotes []Vote
	TotalStake   StakeAmount
}

// FinalizedBlock is an entry in the canonical ledger.
type FinalizedBlock struct {
	Slot             Slot
	BlockId          BlockId
	FinalizationTime Timestamp
	TotalStake       StakeAmount
}

// TimeoutInfo tracks one node's timeout accumulation for one slot.
type TimeoutInfo struct {
	Count       uint32
	LastTimeout Timestamp
	Threshold   uint32
}

// NetworkPartition splits the registry into two non-communicating subsets.
type NetworkPartition struct {
	PartitionA map[NodeId]struct{}
	PartitionB map[NodeId]struct{}
	StartedAt  Timestamp
}

// SameSide reports whether a and b are both members of the same partition
// subset (and therefore can still communicate).
func (p *NetworkPartition) SameSide(a, b NodeId) bool {
	if p == nil {
		return true
	}
	_, aInA := p.PartitionA[a]
	_, bInA := p.PartitionA[b]
	if aInA && bInA {
		return true
	}
	_, aInB := p.PartitionB[a]
	_, bInB := p.PartitionB[b]
	return aInB && bInB
}
