// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"fmt"

	"github.com/luxfi/alpenglow/byzantine"
	"github.com/luxfi/alpenglow/economics"
	"github.com/luxfi/alpenglow/types"
)

// DistributeRewards implements §4.7 distribute_rewards(d): applies a
// Distribution, absorbing an over-the-pool failure into ErrorLog (§7 tier
// 2) rather than stalling the state machine.
func (s *State) DistributeRewards(d economics.Distribution) {
	if err := s.Economics.DistributeRewards(d); err != nil {
		s.logError(fmt.Sprintf("distribute rewards: %v", err))
		s.Log.Debug("rewards distribution rejected", "total", d.TotalRewards, "error", err)
		return
	}
	s.Log.Debug("rewards distributed", "total", d.TotalRewards, "validators", len(d.PerValidator))
}

// SlashValidator implements §4.7 apply_slashing(evidence): slashes node's
// current balance by severity's percentage, saturating at the balance,
// and flips status to Byzantine(Equivocation) on Critical. A zero-balance
// validator is a tier-2 recoverable condition (§7) — the slash still
// applies (realizing 0) but is recorded.
func (s *State) SlashValidator(node types.NodeId, severity economics.Severity, slot types.Slot, reason string) types.StakeAmount {
	if s.Economics.ValidatorBalances[node] == 0 {
		s.logError(fmt.Sprintf("slashing validator %d with zero balance", node))
	}
	realized, becomesByzantine := s.Economics.ApplySlashing(economics.Evidence{
		Node:     node,
		Severity: severity,
		Slot:     slot,
		Reason:   reason,
	})
	if becomesByzantine {
		s.Status[node] = types.ByzantineNodeStatus(byzantine.Equivocation{})
	}
	s.Log.Debug("validator slashed", "node", node, "severity", severity, "realized", realized)
	s.observeSlashing()
	return realized
}

// ReportSlashing implements §4.7 detect_double_voting(v1, v2) wired to
// slashing: if v1 and v2 constitute double voting, the evidence is
// immediately applied via SlashValidator. Returns whether evidence was
// found.
func (s *State) ReportSlashing(v1, v2 types.Vote) bool {
	ev, found := economics.DetectDoubleVoting(v1, v2)
	if !found {
		return false
	}
	s.SlashValidator(ev.Node, ev.Severity, ev.Slot, ev.Reason)
	return true
}

// WithdrawRewards drains node's accrued-but-unclaimed reward counter and
// returns the amount drained.
func (s *State) WithdrawRewards(node types.NodeId) types.StakeAmount {
	return s.Economics.WithdrawRewards(node)
}

// StakeDeposit credits node's balance by amount.
func (s *State) StakeDeposit(node types.NodeId, amount types.StakeAmount) {
	s.Economics.StakeDeposit(node, amount)
}

// StakeWithdrawal debits node's balance by amount, absorbing an
// over-balance withdrawal into ErrorLog (§7 tier 2) instead of stalling.
func (s *State) StakeWithdrawal(node types.NodeId, amount types.StakeAmount) {
	if err := s.Economics.StakeWithdrawal(node, amount); err != nil {
		s.logError(fmt.Sprintf("stake withdrawal: %v", err))
		s.Log.Debug("stake withdrawal rejected", "node", node, "amount", amount, "error", err)
	}
}

// UpdateEconomicParameters replaces the reward/slashing rate pair.
func (s *State) UpdateEconomicParameters(rewardRate, slashingRate float64) {
	s.Economics.UpdateParameters(rewardRate, slashingRate)
}
