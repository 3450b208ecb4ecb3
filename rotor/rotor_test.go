// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rotor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow/types"
)

func TestCreateErasureCodedBlockRedundancyOne(t *testing.T) {
	require := require.New(t)

	b := CreateErasureCodedBlock(1, 1.0)
	require.EqualValues(10, b.RequiredChunks)
	require.EqualValues(20, b.TotalChunks)
	require.Len(b.ChunkChecksum, 20)
}

func TestReconstructionThreshold(t *testing.T) {
	require := require.New(t)

	s := NewState()
	ecb := CreateErasureCodedBlock(1, 1.0)
	s.Blocks[ecb.BlockId] = ecb

	for c := ChunkId(0); c < 9; c++ {
		s.PropagateChunk(1, c, []types.NodeId{types.NodeId(c) + 100})
	}
	require.False(s.CanReconstructBlock(1))

	s.PropagateChunk(1, 9, []types.NodeId{109})
	require.True(s.CanReconstructBlock(1))
}

func TestReconstructBlockNoOpUnlessReconstructible(t *testing.T) {
	require := require.New(t)

	s := NewState()
	ecb := CreateErasureCodedBlock(1, 0.0)
	s.Blocks[ecb.BlockId] = ecb

	require.False(s.ReconstructBlock(42, 1))

	for c := ChunkId(0); c < 10; c++ {
		s.PropagateChunk(1, c, []types.NodeId{200})
	}
	require.True(s.ReconstructBlock(42, 1))
	require.Contains(s.Availability[blockChunkKey{1, 0}], types.NodeId(42))
}

func TestSelectRelayNodesIsDeterministic(t *testing.T) {
	require := require.New(t)

	ecb := CreateErasureCodedBlock(1, 0.0)
	nodes := []types.NodeId{1, 2, 3, 4}
	stake := map[types.NodeId]types.StakeAmount{1: 100, 2: 100, 3: 100, 4: 100}
	stakeOf := func(n types.NodeId) types.StakeAmount { return stake[n] }

	a := SelectRelayNodes(ecb, nodes, stakeOf)
	b := SelectRelayNodes(ecb, nodes, stakeOf)
	require.Equal(a, b)

	var totalAssigned int
	for _, relay := range a {
		totalAssigned += len(relay.Chunks)
	}
	require.EqualValues(ecb.TotalChunks, totalAssigned)
}
