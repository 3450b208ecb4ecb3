// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rotor implements erasure-coded block dissemination over a
// stake-weighted relay overlay: chunk synthesis, relay assignment, and the
// reconstruction predicate.
package rotor

import "github.com/luxfi/alpenglow/types"

// ChunkId identifies one chunk of an erasure-coded block.
type ChunkId uint32

// BaseChunks is the Rotor base chunk count (§6).
const BaseChunks = 10

// Block is the ErasureCodedBlock: a block plus its chunk set.
type Block struct {
	BlockId         types.BlockId
	RequiredChunks  uint32
	TotalChunks     uint32
	RedundancyLevel float64

	// ChunkChecksum is a deterministic function of (chunk id, block id) —
	// never real erasure-coded data, matching the determinism contract in
	// spec.md §5.
	ChunkChecksum map[ChunkId]uint64
}

// CreateErasureCodedBlock synthesizes a Block with required_chunks=10 and
// total_chunks = 10 + floor(10*redundancy_level), per §4.6.
func CreateErasureCodedBlock(blockID types.BlockId, redundancyLevel float64) *Block {
	total := BaseChunks + int(float64(BaseChunks)*redundancyLevel)
	b := &Block{
		BlockId:         blockID,
		RequiredChunks:  BaseChunks,
		TotalChunks:     uint32(total),
		RedundancyLevel: redundancyLevel,
		ChunkChecksum:   make(map[ChunkId]uint64, total),
	}
	for c := 0; c < total; c++ {
		b.ChunkChecksum[ChunkId(c)] = checksum(ChunkId(c), blockID)
	}
	return b
}

// checksum is a deterministic, non-cryptographic function of (chunk, block)
// standing in for real chunk data/checksum — see the determinism contract.
func checksum(chunk ChunkId, block types.BlockId) uint64 {
	return uint64(chunk)*2654435761 + uint64(block)*40503
}

// RelayAssignment maps a relay node to the chunk ids it carries.
type RelayAssignment struct {
	Node   types.NodeId
	Chunks map[ChunkId]struct{}
}

// SelectRelayNodes performs the deterministic stake-weighted single-pass
// relay selection of §4.6: for each chunk, target = (chunk*12345) mod
// total_stake, then walk orderedNodes (a caller-fixed, e.g. sorted-by-id,
// order — see the determinism note in spec.md §9) summing stake until the
// running sum first reaches target.
func SelectRelayNodes(ecb *Block, orderedNodes []types.NodeId, stakeOf func(types.NodeId) types.StakeAmount) []RelayAssignment {
	var totalStake uint64
	for _, n := range orderedNodes {
		totalStake += uint64(stakeOf(n))
	}

	assignments := make(map[types.NodeId]*RelayAssignment)
	var order []types.NodeId

	assign := func(node types.NodeId, chunk ChunkId) {
		a, ok := assignments[node]
		if !ok {
			a = &RelayAssignment{Node: node, Chunks: make(map[ChunkId]struct{})}
			assignments[node] = a
			order = append(order, node)
		}
		a.Chunks[chunk] = struct{}{}
	}

	for c := uint32(0); c < ecb.TotalChunks; c++ {
		if totalStake == 0 || len(orderedNodes) == 0 {
			continue
		}
		target := (uint64(c) * 12345) % totalStake
		var sum uint64
		for _, n := range orderedNodes {
			sum += uint64(stakeOf(n))
			if sum >= target {
				assign(n, ChunkId(c))
				break
			}
		}
	}

	out := make([]RelayAssignment, 0, len(order))
	for _, n := range order {
		out = append(out, *assignments[n])
	}
	return out
}

type blockChunkKey struct {
	block types.BlockId
	chunk ChunkId
}

// State is the Rotor substate: installed blocks, relay assignments, chunk
// availability, and reconstruction markers.
type State struct {
	Blocks       map[types.BlockId]*Block
	Relays       map[types.BlockId][]RelayAssignment
	Availability map[blockChunkKey]map[types.NodeId]struct{}
}

func NewState() *State {
	return &State{
		Blocks:       make(map[types.BlockId]*Block),
		Relays:       make(map[types.BlockId][]RelayAssignment),
		Availability: make(map[blockChunkKey]map[types.NodeId]struct{}),
	}
}

func (s *State) availFor(block types.BlockId, chunk ChunkId) map[types.NodeId]struct{} {
	key := blockChunkKey{block, chunk}
	set, ok := s.Availability[key]
	if !ok {
		set = make(map[types.NodeId]struct{})
		s.Availability[key] = set
	}
	return set
}

// PropagateErasureBlock installs the block and its relay assignments, and
// marks the propagating node as holding every chunk a relay was assigned —
// the leader that disseminates the block already has the full data; relays
// only actually receive their chunks via PropagateChunk.
func (s *State) PropagateErasureBlock(propagator types.NodeId, ecb *Block, relays []RelayAssignment) {
	s.Blocks[ecb.BlockId] = ecb
	s.Relays[ecb.BlockId] = relays
	for _, relay := range relays {
		for chunk := range relay.Chunks {
			s.availFor(ecb.BlockId, chunk)[propagator] = struct{}{}
		}
	}
}

// PropagateChunk records that node forwarded chunk of block to targets.
func (s *State) PropagateChunk(block types.BlockId, chunk ChunkId, targets []types.NodeId) {
	set := s.availFor(block, chunk)
	for _, t := range targets {
		set[t] = struct{}{}
	}
}

// CanReconstructBlock reports whether at least required_chunks distinct
// chunk ids have a non-empty availability set.
func (s *State) CanReconstructBlock(block types.BlockId) bool {
	b, ok := s.Blocks[block]
	if !ok {
		return false
	}
	var available uint32
	for c := ChunkId(0); c < ChunkId(b.TotalChunks); c++ {
		if len(s.Availability[blockChunkKey{block, c}]) > 0 {
			available++
		}
	}
	return available >= b.RequiredChunks
}

// MissingChunks lists the chunk ids of block that currently have no
// available holder (a pure query; RequestMissingChunks drives retrieval
// off of it but does not itself mutate availability).
func (s *State) MissingChunks(block types.BlockId) []ChunkId {
	b, ok := s.Blocks[block]
	if !ok {
		return nil
	}
	var missing []ChunkId
	for c := ChunkId(0); c < ChunkId(b.TotalChunks); c++ {
		if len(s.Availability[blockChunkKey{block, c}]) == 0 {
			missing = append(missing, c)
		}
	}
	return missing
}

// AssignRelayNodes computes and installs the relay assignment for an
// already-installed block, without marking any propagator as holding
// chunks (contrast PropagateErasureBlock, which does both).
func (s *State) AssignRelayNodes(block types.BlockId, orderedNodes []types.NodeId, stakeOf func(types.NodeId) types.StakeAmount) []RelayAssignment {
	b, ok := s.Blocks[block]
	if !ok {
		return nil
	}
	relays := SelectRelayNodes(b, orderedNodes, stakeOf)
	s.Relays[block] = relays
	return relays
}

// ReconstructBlock is a no-op unless the block is reconstructible; on
// success it marks node as holding every chunk of the block.
func (s *State) ReconstructBlock(node types.NodeId, block types.BlockId) bool {
	if !s.CanReconstructBlock(block) {
		return false
	}
	b := s.Blocks[block]
	for c := ChunkId(0); c < ChunkId(b.TotalChunks); c++ {
		s.availFor(block, c)[node] = struct{}{}
	}
	return true
}
