// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package byzantine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/alpenglow/types"
)

type fakeCtx struct {
	stake    map[types.NodeId]types.StakeAmount
	timeouts map[types.NodeId]uint32
	clock    types.Timestamp
}

func (f *fakeCtx) Stake(n types.NodeId) types.StakeAmount { return f.stake[n] }
func (f *fakeCtx) TimeoutCount(n types.NodeId, _ types.Slot) uint32 {
	return f.timeouts[n]
}
func (f *fakeCtx) AdvanceGlobalTime(delta types.Timestamp) { f.clock += delta }

func TestEquivocationEmitsTwoConflictingVotes(t *testing.T) {
	require := require.New(t)

	ctx := &fakeCtx{stake: map[types.NodeId]types.StakeAmount{1: 80}}
	votes := Emit(ctx, 1, Equivocation{}, 1)
	require.Len(votes, 2)
	require.NotEqual(votes[0].Block, votes[1].Block)
	require.Equal(types.Fast, votes[0].Path)
}

func TestWithholdVotesEmitsNothing(t *testing.T) {
	require := require.New(t)
	ctx := &fakeCtx{stake: map[types.NodeId]types.StakeAmount{1: 80}}
	require.Empty(Emit(ctx, 1, WithholdVotes{}, 1))
}

func TestAdaptiveBehaviorSwitchesOnThreshold(t *testing.T) {
	require := require.New(t)

	ctx := &fakeCtx{
		stake:    map[types.NodeId]types.StakeAmount{1: 80},
		timeouts: map[types.NodeId]uint32{1: 5},
	}
	s := AdaptiveBehavior{Primary: RandomVotes{}, Fallback: WithholdVotes{}, AdaptationThreshold: 3}
	require.Empty(Emit(ctx, 1, s, 1))

	ctx.timeouts[1] = 0
	require.NotEmpty(Emit(ctx, 1, s, 1))
}

func TestTimingAttackAdvancesClockAndDefaultsToSlow(t *testing.T) {
	require := require.New(t)

	ctx := &fakeCtx{stake: map[types.NodeId]types.StakeAmount{1: 80}}
	s := NewTimingAttack(true, 5000, nil)
	votes := Emit(ctx, 1, s, 1)
	require.EqualValues(1000, ctx.clock) // capped at 1000
	require.Len(votes, 1)
	require.Equal(types.Slow, votes[0].Path)
}

func TestCoalitionAttackDispatchesByMemberIndex(t *testing.T) {
	require := require.New(t)

	ctx := &fakeCtx{stake: map[types.NodeId]types.StakeAmount{10: 50, 20: 50}}
	attack := CoalitionAttack{
		Members: []types.NodeId{10, 20},
		AttackType: CoalitionAttackType{
			Kind:         SplitVote,
			TargetBlocks: []types.BlockId{7, 8},
		},
	}
	v10 := Emit(ctx, 10, attack, 1)
	v20 := Emit(ctx, 20, attack, 1)
	require.Equal(types.BlockId(7), v10[0].Block)
	require.Equal(types.BlockId(8), v20[0].Block)
}

func TestStakeBasedAttackEscalatesOnThirdSlots(t *testing.T) {
	require := require.New(t)

	ctx := &fakeCtx{stake: map[types.NodeId]types.StakeAmount{1: 1000}}
	s := StakeBasedAttack{ActivationThreshold: 500}

	below := Emit(ctx, 1, s, 3)
	require.Len(below, 3)

	notMultiple := Emit(ctx, 1, s, 4)
	require.Len(notMultiple, 1)
	require.Equal(types.BlockId(1), notMultiple[0].Block)

	ctx.stake[1] = 10
	require.Empty(Emit(ctx, 1, s, 3))
}

func TestFormCoalitionStartsInPreparation(t *testing.T) {
	require := require.New(t)

	_, state := FormCoalition([]types.NodeId{1, 2}, CoalitionAttackType{Kind: SplitVote}, 0, 200)
	require.Equal(Preparation, state.Phase)
	require.False(state.Active)
}

func TestCoordinateAttackTransitionsToExecution(t *testing.T) {
	require := require.New(t)

	c, s := FormCoalition([]types.NodeId{1, 2}, CoalitionAttackType{Kind: SplitVote}, 0, 200)
	CoordinateAttack(&c, &s, 5, 10)
	require.Equal(Execution, s.Phase)
	require.True(s.Active)
	require.Len(c.CoordinationHistory, 1)
}
