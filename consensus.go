// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package alpenglow

import (
	"github.com/luxfi/alpenglow/byzantine"
	"github.com/luxfi/alpenglow/stake"
	"github.com/luxfi/alpenglow/types"
)

// Vote implements §4.1 vote(node, slot, block, path): admits a vote iff the
// node is Honest, with honest dedup on (block, path). Fails silently for
// any other status.
func (s *State) Vote(node types.NodeId, slot types.Slot, block types.BlockId, path types.VotePath) {
	if !s.Status[node].IsHonest() {
		return
	}
	v := types.Vote{Node: node, Slot: slot, Block: block, Path: path, Stake: s.Stake[node]}
	for _, existing := range s.Votes[node][slot] {
		if existing.SameDedupKey(v) {
			s.Log.Debug("dropping vote", "reason", "duplicate (block, path)", "node", node, "slot", slot)
			return
		}
	}
	s.Votes[node][slot] = append(s.Votes[node][slot], v)
}

// engineEmitContext adapts State to byzantine.EmitContext.
type engineEmitContext struct{ s *State }

func (c engineEmitContext) Stake(n types.NodeId) types.StakeAmount { return c.s.Stake[n] }
func (c engineEmitContext) TimeoutCount(n types.NodeId, slot types.Slot) uint32 {
	if info := c.s.Timeouts[n][slot]; info != nil {
		return info.Count
	}
	return 0
}
func (c engineEmitContext) AdvanceGlobalTime(delta types.Timestamp) { c.s.GlobalTime += delta }

// ByzantineVote implements §4.2: applicable only when status[node] is
// Byzantine(_). Emissions bypass the honest dedup guard.
func (s *State) ByzantineVote(node types.NodeId, strategy types.Strategy, slot types.Slot) {
	if !s.Status[node].IsByzantine() {
		return
	}
	votes := byzantine.Emit(engineEmitContext{s}, node, strategy, slot)
	s.Votes[node][slot] = append(s.Votes[node][slot], votes...)
}

// AdaptStrategy swaps the strategy of a Byzantine node; a no-op on any
// other status.
func (s *State) AdaptStrategy(node types.NodeId, strategy types.Strategy) {
	if !s.Status[node].IsByzantine() {
		return
	}
	s.Status[node] = types.ByzantineNodeStatus(strategy)
}

// maxTimingManipulation mirrors byzantine's TimingAttack clock cap: this is
// the other legal mutator of global_time besides AdvanceTime (§4.2, §9).
const maxTimingManipulation = types.Timestamp(1000)

// TimingManipulation advances global_time directly, capped at 1000 ticks,
// independent of any node's strategy — the driver-level analogue of
// TimingAttack's clock effect.
func (s *State) TimingManipulation(delta types.Timestamp) {
	if delta > maxTimingManipulation {
		delta = maxTimingManipulation
	}
	s.GlobalTime += delta
}

// Certify implements §4.1 certify(slot, path): groups all votes for slot on
// path by block, sums stake, and installs a certificate at the first block
// meeting the path's quorum — ties broken by smallest block id for
// deterministic replay. A FinalizedBlock is appended iff the slot is not
// already in the ledger.
func (s *State) Certify(slot types.Slot, path types.VotePath) {
	totals := make(map[types.BlockId]types.StakeAmount)
	byBlock := make(map[types.BlockId][]types.Vote)
	for _, node := range s.Nodes {
		for _, v := range s.Votes[node][slot] {
			if v.Path != path {
				continue
			}
			totals[v.Block] += v.Stake
			byBlock[v.Block] = append(byBlock[v.Block], v)
		}
	}

	quorum := stake.QuorumFor(s.Registry(), path)

	var best types.BlockId
	var bestTotal types.StakeAmount
	found := false
	for block, total := range totals {
		if total < quorum {
			continue
		}
		if !found || block < best {
			best, bestTotal, found = block, total, true
		}
	}
	if !found {
		return
	}

	s.Certificates[slot] = types.Certificate{
		Slot:       slot,
		Block:      best,
		Path:       path,
		Votes:      byBlock[best],
		TotalStake: bestTotal,
	}
	s.Log.Debug("certificate installed",
		"slot", slot,
		"block", best,
		"path", path,
		"stake", bestTotal,
	)
	if !s.ledgerHasSlot(slot) {
		s.Ledger = append(s.Ledger, types.FinalizedBlock{
			Slot:             slot,
			BlockId:          best,
			FinalizationTime: s.GlobalTime,
			TotalStake:       bestTotal,
		})
	}
	s.observeCertificates()
}

// Timeout implements §4.1 timeout(node, slot): Honest-only, increments the
// node's timeout counter for the slot and stamps last_timeout.
func (s *State) Timeout(node types.NodeId, slot types.Slot) {
	if !s.Status[node].IsHonest() {
		return
	}
	info := s.Timeouts[node][slot]
	if info == nil {
		info = &types.TimeoutInfo{Threshold: DefaultTimeoutThreshold}
		s.Timeouts[node][slot] = info
	}
	info.Count++
	info.LastTimeout = s.GlobalTime
}

// SkipCert implements §4.1 skip_cert(slot): promotes a skip certificate iff
// at least 60% of the registry has reached its per-slot timeout threshold
// and the aggregated stake of all votes observed for the slot meets the
// slow quorum. The sealed vote set is the union of all votes for the slot.
func (s *State) SkipCert(slot types.Slot) {
	var atThreshold int
	for _, node := range s.Nodes {
		if info := s.Timeouts[node][slot]; info != nil && info.Count >= info.Threshold {
			atThreshold++
		}
	}
	required := (SkipCertNodePercent * len(s.Nodes)) / 100
	if atThreshold < required {
		return
	}

	var totalStake types.StakeAmount
	var allVotes []types.Vote
	for _, node := range s.Nodes {
		for _, v := range s.Votes[node][slot] {
			totalStake += v.Stake
			allVotes = append(allVotes, v)
		}
	}
	if totalStake < stake.SlowQuorum(s.Registry()) {
		return
	}

	s.SkipCerts[slot] = types.SkipCertificate{Slot: slot, TimeoutVotes: allVotes, TotalStake: totalStake}
	s.Log.Debug("skip certificate installed", "slot", slot, "stake", totalStake)
	s.observeCertificates()
}

// AdvanceTime implements §4.1 advance_time(δ): adds δ to global_time; every
// multiple of TicksPerSlot crossed advances the current slot (bounded by
// slot_horizon), cascading into leader rotation and window rollover (§4.4).
func (s *State) AdvanceTime(delta types.Timestamp) {
	before := uint64(s.GlobalTime) / TicksPerSlot
	s.GlobalTime += delta
	after := uint64(s.GlobalTime) / TicksPerSlot

	for crossed := before; crossed < after && s.CurrentSlot < s.SlotHorizon; crossed++ {
		s.CurrentSlot++
		s.Rotation.RotateLeader(s.CurrentSlot)
		if s.Rotation.NeedsRollover(s.CurrentSlot) {
			s.Rotation.UpdateWindow(s.CurrentSlot, s.Nodes, s.stakeOf)
		}
	}
}
