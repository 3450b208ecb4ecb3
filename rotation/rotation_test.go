// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rotation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow/types"
)

func TestLeaderForSlotWrapsSchedule(t *testing.T) {
	require := require.New(t)

	s := NewState(DefaultWindowSize, DefaultFinalityDepth, []types.NodeId{1, 2, 3})
	l1, ok := s.LeaderForSlot(1)
	require.True(ok)
	require.Equal(types.NodeId(1), l1)

	l4, ok := s.LeaderForSlot(4)
	require.True(ok)
	require.Equal(l1, l4)
}

func TestProposeBlockRejectsWrongLeader(t *testing.T) {
	require := require.New(t)

	s := NewState(DefaultWindowSize, DefaultFinalityDepth, []types.NodeId{1, 2, 3})
	leader, _ := s.LeaderForSlot(1)

	require.True(s.ProposeBlock(leader, 1))
	require.False(s.ProposeBlock(leader+100, 1))
}

func TestRolloverRegeneratesSchedule(t *testing.T) {
	require := require.New(t)

	nodes := []types.NodeId{1, 2, 3, 4}
	stake := map[types.NodeId]types.StakeAmount{1: 100, 2: 100, 3: 100, 4: 100}
	stakeOf := func(n types.NodeId) types.StakeAmount { return stake[n] }

	s := NewState(10, 2, Shuffle(1, nodes, stakeOf))
	require.False(s.NeedsRollover(10))
	require.True(s.NeedsRollover(11))

	s.UpdateWindow(11, nodes, stakeOf)
	require.EqualValues(11, s.WindowStart)
	require.Len(s.Schedule, len(nodes))
}

func TestShuffleIsDeterministic(t *testing.T) {
	require := require.New(t)

	nodes := []types.NodeId{1, 2, 3, 4, 5}
	stake := map[types.NodeId]types.StakeAmount{1: 10, 2: 20, 3: 30, 4: 40, 5: 50}
	stakeOf := func(n types.NodeId) types.StakeAmount { return stake[n] }

	a := Shuffle(7, nodes, stakeOf)
	b := Shuffle(7, nodes, stakeOf)
	require.Equal(a, b)
}

func TestRotateLeaderHistoryCapsAt100(t *testing.T) {
	require := require.New(t)

	s := NewState(1000, 2, []types.NodeId{1, 2, 3})
	for slot := types.Slot(1); slot <= 150; slot++ {
		s.RotateLeader(slot)
	}
	require.Len(s.History, HistoryCap)
	require.EqualValues(150, s.History[len(s.History)-1].Slot)
}
