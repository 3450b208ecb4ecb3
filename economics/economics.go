// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package economics implements the reward-distribution and slashing
// arithmetic needed to state the slashing invariants (§4.7) — not a full
// treasury model.
package economics

import "github.com/luxfi/alpenglow/types"

// Severity is the slashing-evidence severity tier.
type Severity uint8

const (
	Minor Severity = iota
	Moderate
	Severe
	Critical
)

// slashPercent is the severity→penalty table of §4.7/§6.
func (s Severity) slashPercent() uint64 {
	switch s {
	case Minor:
		return 5
	case Moderate:
		return 15
	case Severe:
		return 30
	case Critical:
		return 50
	default:
		return 0
	}
}

func (s Severity) String() string {
	switch s {
	case Minor:
		return "Minor"
	case Moderate:
		return "Moderate"
	case Severe:
		return "Severe"
	case Critical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Evidence records a slashable act and, once applied, its realized penalty.
type Evidence struct {
	Node          types.NodeId
	Severity      Severity
	Slot          types.Slot
	Reason        string
	RealizedSlash types.StakeAmount
	Applied       bool
}

// Params bundles the per-scenario economic parameters the original model's
// advanced examples construct together — see SPEC_FULL.md §4.
type Params struct {
	BaseReward          types.StakeAmount
	PenaltyMultiplier   float64
	InflationRate       float64
	ValidatorRewardShare float64
}

// State is the EconomicState of §3.
type State struct {
	RewardsPool      types.StakeAmount
	TotalSlashed     types.StakeAmount
	ValidatorBalances map[types.NodeId]types.StakeAmount
	PendingRewards   map[types.NodeId]types.StakeAmount
	SlashingEvidence []Evidence
	RewardRate       float64
	SlashingRate     float64
}

// NewStateFromParams seeds a State the way NewState does, but driven by a
// per-scenario Params bundle: the pool starts at BaseReward, the reward
// rate is the validator share of the pool, and the slashing rate carries
// the penalty multiplier through for callers that scale severity
// percentages by it.
func NewStateFromParams(nodes []types.NodeId, stakeOf func(types.NodeId) types.StakeAmount, p Params) *State {
	return NewState(nodes, stakeOf, p.BaseReward, p.ValidatorRewardShare, p.PenaltyMultiplier)
}

// ApplyInflation grows the rewards pool by InflationRate — the per-epoch
// pool growth the original model's advanced economic examples apply
// alongside reward distribution.
func (s *State) ApplyInflation(p Params) {
	s.RewardsPool += types.StakeAmount(float64(s.RewardsPool) * p.InflationRate)
}

// NewState seeds every node's balance at its initial stake, matching the
// lifecycle rule that every map is pre-populated at construction (§3).
func NewState(nodes []types.NodeId, stakeOf func(types.NodeId) types.StakeAmount, rewardsPool types.StakeAmount, rewardRate, slashingRate float64) *State {
	balances := make(map[types.NodeId]types.StakeAmount, len(nodes))
	pending := make(map[types.NodeId]types.StakeAmount, len(nodes))
	for _, n := range nodes {
		balances[n] = stakeOf(n)
		pending[n] = 0
	}
	return &State{
		RewardsPool:       rewardsPool,
		ValidatorBalances: balances,
		PendingRewards:    pending,
		RewardRate:        rewardRate,
		SlashingRate:      slashingRate,
	}
}

// Allocation is one validator's share of an epoch's reward distribution.
type Allocation struct {
	Participation types.StakeAmount
	Performance   types.StakeAmount
}

// Distribution is the result of CalculateEpochRewards, ready for
// DistributeRewards.
type Distribution struct {
	TotalRewards types.StakeAmount
	PerValidator map[types.NodeId]Allocation
}

// CalculateEpochRewards implements §4.7: total = floor(pool*rate); base =
// total/|participating|; participation reward = base/2 for everyone;
// performance bonus = floor(base*(stake/total_stake)*0.2) for honest
// participants only.
func CalculateEpochRewards(
	pool types.StakeAmount,
	rewardRate float64,
	participating []types.NodeId,
	stakeOf func(types.NodeId) types.StakeAmount,
	totalStake types.StakeAmount,
	isHonest func(types.NodeId) bool,
) Distribution {
	if len(participating) == 0 {
		return Distribution{PerValidator: map[types.NodeId]Allocation{}}
	}

	total := types.StakeAmount(float64(pool) * rewardRate)
	base := uint64(total) / uint64(len(participating))

	per := make(map[types.NodeId]Allocation, len(participating))
	for _, n := range participating {
		alloc := Allocation{Participation: types.StakeAmount(base / 2)}
		if isHonest(n) && totalStake > 0 {
			bonus := float64(base) * (float64(stakeOf(n)) / float64(totalStake)) * 0.2
			alloc.Performance = types.StakeAmount(bonus)
		}
		per[n] = alloc
	}
	return Distribution{TotalRewards: total, PerValidator: per}
}

// DistributeRewards applies a Distribution: fails if it exceeds the pool,
// else credits every validator and subtracts from the pool (saturating).
func (s *State) DistributeRewards(d Distribution) error {
	if d.TotalRewards > s.RewardsPool {
		return ErrRewardsExceedPool
	}
	for n, alloc := range d.PerValidator {
		s.ValidatorBalances[n] += alloc.Participation + alloc.Performance
		s.PendingRewards[n] += alloc.Participation + alloc.Performance
	}
	if d.TotalRewards > s.RewardsPool {
		s.RewardsPool = 0
	} else {
		s.RewardsPool -= d.TotalRewards
	}
	return nil
}

// ApplySlashing implements §4.7: slash = floor(balance * percent) on the
// current balance, saturating subtraction, evidence logged. Returns
// becomesByzantine=true when Critical severity should flip the node's
// status to Byzantine(Equivocation) — the caller (engine) owns status.
func (s *State) ApplySlashing(ev Evidence) (realized types.StakeAmount, becomesByzantine bool) {
	balance := s.ValidatorBalances[ev.Node]
	pct := ev.Severity.slashPercent()
	realized = types.StakeAmount((uint64(balance) * pct) / 100)
	if realized > balance {
		realized = balance
	}
	s.ValidatorBalances[ev.Node] = balance - realized
	s.TotalSlashed += realized

	ev.RealizedSlash = realized
	ev.Applied = true
	s.SlashingEvidence = append(s.SlashingEvidence, ev)

	return realized, ev.Severity == Critical
}

// StakeDeposit credits node's balance by amount — the minimal deposit
// accounting §1 asks for, not a full treasury model.
func (s *State) StakeDeposit(node types.NodeId, amount types.StakeAmount) {
	s.ValidatorBalances[node] += amount
}

// StakeWithdrawal debits node's balance by amount, failing if it would go
// negative — a tier-2 local recoverable failure per spec.md §7.
func (s *State) StakeWithdrawal(node types.NodeId, amount types.StakeAmount) error {
	if amount > s.ValidatorBalances[node] {
		return ErrWithdrawalExceedsBalance
	}
	s.ValidatorBalances[node] -= amount
	return nil
}

// WithdrawRewards drains node's pending-rewards counter and reports the
// amount drained. DistributeRewards already merges rewards into
// ValidatorBalances at credit time, so this only clears the bookkeeping
// counter that tracks what's been credited but not yet "claimed".
func (s *State) WithdrawRewards(node types.NodeId) types.StakeAmount {
	amount := s.PendingRewards[node]
	s.PendingRewards[node] = 0
	return amount
}

// UpdateParameters replaces the reward/slashing rate pair, per
// UpdateEconomicParameters (§6 action algebra).
func (s *State) UpdateParameters(rewardRate, slashingRate float64) {
	s.RewardRate = rewardRate
	s.SlashingRate = slashingRate
}

// DetectDoubleVoting implements §4.7: Severe evidence iff v1 and v2 are the
// same node/slot/path voting for different blocks.
func DetectDoubleVoting(v1, v2 types.Vote) (Evidence, bool) {
	if v1.Node == v2.Node && v1.Slot == v2.Slot && v1.Path == v2.Path && v1.Block != v2.Block {
		return Evidence{Node: v1.Node, Severity: Severe, Slot: v1.Slot, Reason: "double voting"}, true
	}
	return Evidence{}, false
}
