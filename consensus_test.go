// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow/byzantine"
	"github.com/luxfi/alpenglow/types"
)

// Scenario 2 (spec.md §8): minority Byzantine safety, 4 nodes stakes
// {80,110,110,100}. Node 1 is Byzantine(Equivocation) at exactly 20% stake.
func TestByzantineVoteEquivocatesWithoutCertifying(t *testing.T) {
	require := require.New(t)

	nodes := []types.NodeId{1, 2, 3, 4}
	stakeDist := map[types.NodeId]types.StakeAmount{1: 80, 2: 110, 3: 110, 4: 100}
	s := NewState(nodes, stakeDist, 5)
	s.Status[1] = types.ByzantineNodeStatus(byzantine.Equivocation{})

	s.ByzantineVote(1, byzantine.Equivocation{}, 1)
	require.Len(s.Votes[1][1], 2)
	require.NotEqual(s.Votes[1][1][0].Block, s.Votes[1][1][1].Block)

	s.Certify(1, types.Fast)
	_, ok := s.Certificates[1]
	require.False(ok)
}

// Honest nodes never reach ByzantineVote: it is a no-op on non-Byzantine
// status, the flip side of Vote's Honest-only guard.
func TestByzantineVoteNoOpOnHonestNode(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.ByzantineVote(1, byzantine.Equivocation{}, 1)
	require.Empty(s.Votes[1][1])
}

// Scenario 4 (spec.md §8): timeout-driven skip, 4 nodes equal stake.
func TestSkipCertPromotesOnTimeoutAndVoteStakeQuorum(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	for _, n := range []types.NodeId{1, 2, 3} {
		s.Timeouts[n][1].Count = 5
	}
	// Seed three votes summing to 300 >= slow quorum (240).
	for i, n := range []types.NodeId{1, 2, 3} {
		s.Vote(n, 1, types.BlockId(i), types.Slow)
	}

	s.SkipCert(1)
	sc, ok := s.SkipCerts[1]
	require.True(ok)
	require.GreaterOrEqual(sc.TotalStake, types.StakeAmount(240))
}

func TestSkipCertNoOpBelowNodeThreshold(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.Timeouts[1][1].Count = 5
	for _, n := range []types.NodeId{1, 2, 3} {
		s.Vote(n, 1, 0, types.Slow)
	}
	s.SkipCert(1)
	_, ok := s.SkipCerts[1]
	require.False(ok)
}

func TestTimingManipulationCapsAtMax(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.TimingManipulation(5000)
	require.EqualValues(1000, s.GlobalTime)
}

func TestAdaptStrategyNoOpOnHonestNode(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.AdaptStrategy(1, byzantine.WithholdVotes{})
	require.True(s.Status[1].IsHonest())
}
