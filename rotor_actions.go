// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"sort"

	"github.com/luxfi/alpenglow/rotor"
	"github.com/luxfi/alpenglow/types"
)

// orderedNodes returns the registry sorted by ascending node id — the
// stable iteration order §4.6/§9 requires for relay selection to replay
// deterministically.
func (s *State) orderedNodes() []types.NodeId {
	out := make([]types.NodeId, len(s.Nodes))
	copy(out, s.Nodes)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PropagateErasureBlock implements §4.6 PropagateErasureBlock: erasure-codes
// block at redundancyLevel, selects relays over the deterministic node
// order, installs both, and marks propagator as holding every assigned
// chunk.
func (s *State) PropagateErasureBlock(propagator types.NodeId, block types.BlockId, redundancyLevel float64) *rotor.Block {
	ecb := rotor.CreateErasureCodedBlock(block, redundancyLevel)
	relays := rotor.SelectRelayNodes(ecb, s.orderedNodes(), s.stakeOf)
	s.Rotor.PropagateErasureBlock(propagator, ecb, relays)
	s.Log.Debug("erasure-coded block propagated", "block", block, "total_chunks", ecb.TotalChunks, "relays", len(relays))
	return ecb
}

// PropagateChunk implements §4.6 PropagateChunk(node, chunk, targets):
// records that targets now hold chunk of block.
func (s *State) PropagateChunk(block types.BlockId, chunk rotor.ChunkId, targets []types.NodeId) {
	s.Rotor.PropagateChunk(block, chunk, targets)
}

// RequestMissingChunks is a read-only query listing block's currently
// unavailable chunk ids; it does not itself mutate availability (§4.6 —
// a driver uses the result to drive PropagateChunk calls).
func (s *State) RequestMissingChunks(block types.BlockId) []rotor.ChunkId {
	return s.Rotor.MissingChunks(block)
}

// ReconstructBlock implements §4.6 ReconstructBlock(node, block): a no-op
// unless the block is currently reconstructible; on success marks node as
// holding every chunk.
func (s *State) ReconstructBlock(node types.NodeId, block types.BlockId) bool {
	ok := s.Rotor.ReconstructBlock(node, block)
	if ok {
		s.Log.Debug("block reconstructed", "node", node, "block", block)
	}
	return ok
}

// AssignRelayNodes implements §4.6 AssignRelayNodes: (re)computes the relay
// assignment for an already-installed block over the deterministic node
// order, without marking any propagator as holding chunks.
func (s *State) AssignRelayNodes(block types.BlockId) []rotor.RelayAssignment {
	return s.Rotor.AssignRelayNodes(block, s.orderedNodes(), s.stakeOf)
}
