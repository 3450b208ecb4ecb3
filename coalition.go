// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"github.com/luxfi/alpenglow/byzantine"
	"github.com/luxfi/alpenglow/types"
)

// FormCoalition implements §4.3: appends a new coalition in Preparation,
// with its total stake summed from its members' current stake.
func (s *State) FormCoalition(members []types.NodeId, attackType byzantine.CoalitionAttackType) {
	var total types.StakeAmount
	for _, m := range members {
		total += s.Stake[m]
	}
	c, cs := byzantine.FormCoalition(members, attackType, s.GlobalTime, total)
	s.Coalitions = append(s.Coalitions, c)
	s.CoalitionStates = append(s.CoalitionStates, cs)
}

// CoordinateAttack transitions a coalition to Execution; a no-op if index
// names no coalition.
func (s *State) CoordinateAttack(index int, targetSlot types.Slot) {
	if index < 0 || index >= len(s.Coalitions) {
		return
	}
	byzantine.CoordinateAttack(&s.Coalitions[index], &s.CoalitionStates[index], targetSlot, s.GlobalTime)
}

// CoalitionVote dispatches every member of a coalition against its own
// attack type for slot, appending each member's emitted votes — the
// coalition-wide counterpart to ByzantineVote for a lone node.
func (s *State) CoalitionVote(index int, slot types.Slot) {
	if index < 0 || index >= len(s.Coalitions) {
		return
	}
	c := s.Coalitions[index]
	for i, member := range c.Members {
		votes := byzantine.EmitForMember(c.AttackType, i, member, slot, s.Stake[member])
		s.Votes[member][slot] = append(s.Votes[member][slot], votes...)
	}
}
