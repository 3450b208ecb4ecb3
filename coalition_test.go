// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow/byzantine"
	"github.com/luxfi/alpenglow/types"
)

func TestFormCoalitionSumsMemberStake(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.FormCoalition([]types.NodeId{1, 2}, byzantine.CoalitionAttackType{Kind: byzantine.SplitVote, TargetBlocks: []types.BlockId{0, 1}})

	require.Len(s.Coalitions, 1)
	require.EqualValues(200, s.Coalitions[0].TotalStake)
	require.False(s.CoalitionStates[0].Active)
	require.Equal(byzantine.Preparation, s.CoalitionStates[0].Phase)
}

func TestCoordinateAttackTransitionsToExecution(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.FormCoalition([]types.NodeId{1, 2}, byzantine.CoalitionAttackType{Kind: byzantine.DelayedFlood})
	s.CoordinateAttack(0, 3)

	require.True(s.CoalitionStates[0].Active)
	require.Equal(byzantine.Execution, s.CoalitionStates[0].Phase)
	require.Len(s.Coalitions[0].CoordinationHistory, 1)
}

func TestCoordinateAttackNoOpOnUnknownIndex(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.CoordinateAttack(5, 1)
	require.Empty(s.Coalitions)
}

func TestCoalitionVoteDispatchesSplitVote(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.FormCoalition([]types.NodeId{1, 2}, byzantine.CoalitionAttackType{
		Kind:         byzantine.SplitVote,
		TargetBlocks: []types.BlockId{10, 11},
	})
	s.CoalitionVote(0, 1)

	require.Equal(types.BlockId(10), s.Votes[1][1][0].Block)
	require.Equal(types.BlockId(11), s.Votes[2][1][0].Block)
}
