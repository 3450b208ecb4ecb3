// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow/types"
)

func TestProposeBlockRejectsNonScheduledLeader(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	leader, ok := s.Rotation.LeaderForSlot(1)
	require.True(ok)

	var other types.NodeId
	for _, n := range s.Nodes {
		if n != leader {
			other = n
			break
		}
	}

	require.False(s.ProposeBlock(other, 1, 1))
	require.True(s.ProposeBlock(leader, 1, 1))
}

func TestUpdateWindowRegeneratesScheduleDeterministically(t *testing.T) {
	require := require.New(t)

	s1 := fourNodeState()
	s2 := fourNodeState()
	s1.UpdateWindow(11)
	s2.UpdateWindow(11)
	require.Equal(s1.Rotation.Schedule, s2.Rotation.Schedule)
}

func TestRotateLeaderAppendsHistory(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.RotateLeader(1)
	require.Len(s.Rotation.History, 1)
	require.Equal(types.Slot(1), s.Rotation.History[0].Slot)
}
