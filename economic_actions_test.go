// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow/economics"
	"github.com/luxfi/alpenglow/types"
)

// Scenario 5 (spec.md §8): slashing severity table, 4 nodes each 1000 stake.
func TestSlashValidatorSeverityTable(t *testing.T) {
	require := require.New(t)

	nodes := []types.NodeId{0, 1, 2, 3}
	stakeDist := map[types.NodeId]types.StakeAmount{0: 1000, 1: 1000, 2: 1000, 3: 1000}
	s := NewState(nodes, stakeDist, 5)

	cases := []struct {
		node     types.NodeId
		severity economics.Severity
		want     types.StakeAmount
	}{
		{0, economics.Minor, 50},
		{1, economics.Moderate, 150},
		{2, economics.Severe, 300},
		{3, economics.Critical, 500},
	}
	for _, c := range cases {
		realized := s.SlashValidator(c.node, c.severity, 1, "test")
		require.EqualValues(c.want, realized)
	}

	require.True(s.Status[3].IsByzantine())
	require.Equal("Byzantine(Equivocation)", s.Status[3].String())
}

func TestReportSlashingDetectsDoubleVoting(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	v1 := types.Vote{Node: 1, Slot: 5, Block: 1, Path: types.Fast, Stake: 100}
	v2 := types.Vote{Node: 1, Slot: 5, Block: 2, Path: types.Fast, Stake: 100}

	require.True(s.ReportSlashing(v1, v2))
	require.Len(s.Economics.SlashingEvidence, 1)
	require.Equal(economics.Severe, s.Economics.SlashingEvidence[0].Severity)

	require.False(s.ReportSlashing(v1, v1))
}

func TestStakeWithdrawalExceedingBalanceIsRecordedNotFatal(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	before := s.Economics.ValidatorBalances[1]
	s.StakeWithdrawal(1, before+1)
	require.Equal(before, s.Economics.ValidatorBalances[1])
	require.Len(s.ErrorLog, 1)
}

func TestStakeDepositCreditsBalance(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	before := s.Economics.ValidatorBalances[1]
	s.StakeDeposit(1, 50)
	require.Equal(before+50, s.Economics.ValidatorBalances[1])
}

func TestDistributeRewardsOverPoolIsRecordedNotFatal(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.DistributeRewards(economics.Distribution{
		TotalRewards: s.Economics.RewardsPool + 1,
		PerValidator: map[types.NodeId]economics.Allocation{1: {}},
	})
	require.Len(s.ErrorLog, 1)
}

func TestUpdateEconomicParameters(t *testing.T) {
	require := require.New(t)

	s := fourNodeState()
	s.UpdateEconomicParameters(0.2, 0.3)
	require.InDelta(0.2, s.Economics.RewardRate, 1e-9)
	require.InDelta(0.3, s.Economics.SlashingRate, 1e-9)
}
