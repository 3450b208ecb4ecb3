// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package economics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow/types"
)

func TestNewStateSeedsBalancesFromStake(t *testing.T) {
	require := require.New(t)

	stake := map[types.NodeId]types.StakeAmount{1: 100, 2: 200}
	s := NewState([]types.NodeId{1, 2}, func(n types.NodeId) types.StakeAmount { return stake[n] }, 1000, 0.1, 0.05)

	require.EqualValues(100, s.ValidatorBalances[1])
	require.EqualValues(200, s.ValidatorBalances[2])
	require.EqualValues(1000, s.RewardsPool)
}

func TestCalculateEpochRewardsSplitsParticipationAndPerformance(t *testing.T) {
	require := require.New(t)

	stake := map[types.NodeId]types.StakeAmount{1: 100, 2: 900}
	stakeOf := func(n types.NodeId) types.StakeAmount { return stake[n] }
	honest := map[types.NodeId]bool{1: true, 2: false}

	d := CalculateEpochRewards(1000, 0.1, []types.NodeId{1, 2}, stakeOf, 1000, func(n types.NodeId) bool { return honest[n] })

	require.EqualValues(100, d.TotalRewards)
	require.EqualValues(25, d.PerValidator[1].Participation)
	require.NotZero(d.PerValidator[1].Performance)
	require.Zero(d.PerValidator[2].Performance)
}

func TestDistributeRewardsFailsWhenExceedingPool(t *testing.T) {
	require := require.New(t)

	s := NewState([]types.NodeId{1}, func(types.NodeId) types.StakeAmount { return 0 }, 10, 0, 0)
	err := s.DistributeRewards(Distribution{TotalRewards: 100, PerValidator: map[types.NodeId]Allocation{1: {}}})
	require.ErrorIs(err, ErrRewardsExceedPool)
}

func TestApplySlashingSeverityTable(t *testing.T) {
	require := require.New(t)

	s := NewState([]types.NodeId{1}, func(types.NodeId) types.StakeAmount { return 1000 }, 0, 0, 0)

	realized, becomesByzantine := s.ApplySlashing(Evidence{Node: 1, Severity: Minor})
	require.EqualValues(50, realized)
	require.False(becomesByzantine)
	require.EqualValues(950, s.ValidatorBalances[1])

	realized, becomesByzantine = s.ApplySlashing(Evidence{Node: 1, Severity: Critical})
	require.EqualValues(475, realized)
	require.True(becomesByzantine)
	require.Len(s.SlashingEvidence, 2)
}

func TestApplySlashingCriticalOnSmallBalance(t *testing.T) {
	require := require.New(t)

	s := NewState([]types.NodeId{1}, func(types.NodeId) types.StakeAmount { return 10 }, 0, 0, 0)
	realized, _ := s.ApplySlashing(Evidence{Node: 1, Severity: Critical})
	require.EqualValues(5, realized)
	require.EqualValues(5, s.ValidatorBalances[1])
}

func TestNewStateFromParamsSeedsPoolAndRates(t *testing.T) {
	require := require.New(t)

	p := Params{
		BaseReward:           500,
		PenaltyMultiplier:     0.2,
		InflationRate:         0.1,
		ValidatorRewardShare: 0.3,
	}
	s := NewStateFromParams([]types.NodeId{1, 2}, func(types.NodeId) types.StakeAmount { return 100 }, p)

	require.EqualValues(500, s.RewardsPool)
	require.InDelta(0.3, s.RewardRate, 1e-9)
	require.InDelta(0.2, s.SlashingRate, 1e-9)
}

func TestApplyInflationGrowsPool(t *testing.T) {
	require := require.New(t)

	s := NewState([]types.NodeId{1}, func(types.NodeId) types.StakeAmount { return 100 }, 1000, 0, 0)
	s.ApplyInflation(Params{InflationRate: 0.1})
	require.EqualValues(1100, s.RewardsPool)
}

func TestDetectDoubleVoting(t *testing.T) {
	require := require.New(t)

	v1 := types.Vote{Node: 1, Slot: 5, Block: 1, Path: types.Fast}
	v2 := types.Vote{Node: 1, Slot: 5, Block: 2, Path: types.Fast}
	ev, ok := DetectDoubleVoting(v1, v2)
	require.True(ok)
	require.Equal(Severe, ev.Severity)

	v3 := types.Vote{Node: 1, Slot: 5, Block: 1, Path: types.Fast}
	_, ok = DetectDoubleVoting(v1, v3)
	require.False(ok)
}
