// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import "github.com/luxfi/alpenglow/types"

// FailureKind discriminates the FailureType tagged union.
type FailureKind uint8

const (
	LinkFailure FailureKind = iota
	NodeIsolation
	PacketLoss
	LatencySpike
)

// Failure is an active failure injection. Only the fields relevant to Kind
// are meaningful.
type Failure struct {
	ID   uint64
	Kind FailureKind

	// LinkFailure
	From, To types.NodeId

	// NodeIsolation
	Node types.NodeId

	// PacketLoss
	Rate float64

	// LatencySpike
	Multiplier float64
}

func NewLinkFailure(from, to types.NodeId) Failure {
	return Failure{Kind: LinkFailure, From: from, To: to}
}

func NewNodeIsolation(node types.NodeId) Failure {
	return Failure{Kind: NodeIsolation, Node: node}
}

func NewPacketLoss(rate float64) Failure {
	return Failure{Kind: PacketLoss, Rate: rate}
}

func NewLatencySpike(multiplier float64) Failure {
	return Failure{Kind: LatencySpike, Multiplier: multiplier}
}

// affectsLink reports whether f concerns the from/to link at all (used to
// find the spike multiplier and any drop decision).
func (f Failure) affectsLink(from, to types.NodeId) bool {
	switch f.Kind {
	case LinkFailure:
		return (f.From == from && f.To == to) || (f.From == to && f.To == from)
	case NodeIsolation:
		return f.Node == from || f.Node == to
	case PacketLoss, LatencySpike:
		return true
	default:
		return false
	}
}

// packetLossHash is the deterministic drop-probability hash from §4.5:
// ((from + to + t) mod 100) / 100 < rate.
func packetLossHash(from, to types.NodeId, now types.Timestamp) float64 {
	mod := (uint64(from) + uint64(to) + uint64(now)) % 100
	return float64(mod) / 100.0
}
