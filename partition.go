// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import "github.com/luxfi/alpenglow/types"

// NetworkPartition installs a partition splitting the registry into two
// non-communicating subsets, per §3. Overwrites any existing partition.
func (s *State) NetworkPartition(a, b []types.NodeId) {
	setA := make(map[types.NodeId]struct{}, len(a))
	for _, n := range a {
		setA[n] = struct{}{}
	}
	setB := make(map[types.NodeId]struct{}, len(b))
	for _, n := range b {
		setB[n] = struct{}{}
	}
	s.Partition = &types.NetworkPartition{PartitionA: setA, PartitionB: setB, StartedAt: s.GlobalTime}
	s.Log.Debug("network partition installed", "sizeA", len(a), "sizeB", len(b))
}

// HealPartition removes the active partition; a no-op if none is present.
// HealPartition ∘ NetworkPartition(A,B) ≡ id on the partition field (§8).
func (s *State) HealPartition() {
	s.Partition = nil
	s.Log.Debug("network partition healed")
}
