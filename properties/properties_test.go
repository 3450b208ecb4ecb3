// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package properties

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow"
	"github.com/luxfi/alpenglow/types"
)

func fourEqualNodes() *alpenglow.State {
	nodes := []types.NodeId{1, 2, 3, 4}
	stakeDist := map[types.NodeId]types.StakeAmount{1: 100, 2: 100, 3: 100, 4: 100}
	return alpenglow.NewState(nodes, stakeDist, 5)
}

func TestFastPathHappyPathProperties(t *testing.T) {
	require := require.New(t)

	s := fourEqualNodes()
	for _, n := range []types.NodeId{1, 2, 3, 4} {
		s.Vote(n, 1, 1, types.Fast)
	}
	s.Certify(1, types.Fast)

	require.True(Safety(s))
	require.True(ByzantineResilience(s))
	require.True(FastPathEfficiency(s))
	require.True(HonestNoEquivocation(s))

	cert, ok := s.Certificates[1]
	require.True(ok)
	require.EqualValues(400, cert.TotalStake)
	require.Equal(types.BlockId(1), cert.Block)
	require.Len(s.Ledger, 1)
}

func TestProgressFailsWithoutCertOrSkip(t *testing.T) {
	require := require.New(t)

	s := fourEqualNodes()
	s.AdvanceTime(30)
	require.False(Progress(s))
}

func TestLeaderFairnessHoldsForEvenRotation(t *testing.T) {
	require := require.New(t)

	nodes := []types.NodeId{1, 2, 3, 4}
	stakeDist := map[types.NodeId]types.StakeAmount{1: 100, 2: 100, 3: 100, 4: 100}
	s := alpenglow.NewState(nodes, stakeDist, 500)
	for i := 0; i < 400; i++ {
		s.AdvanceTime(10)
	}
	require.True(LeaderFairness(s))
}

func TestEconomicConservationHoldsInitially(t *testing.T) {
	require := require.New(t)

	s := fourEqualNodes()
	require.True(EconomicConservation(s, 400, 0))
}
