// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package byzantine

import "github.com/luxfi/alpenglow/types"

// CertificateManipulationKind discriminates the CertificateManipulation
// attack subtype.
type CertificateManipulationKind uint8

const (
	PreventCertification CertificateManipulationKind = iota
	ConflictingCertificates
	DelayedCertification
)

// AttackKind discriminates the CoalitionAttackType tagged union (§4.3).
type AttackKind uint8

const (
	SplitVote AttackKind = iota
	DelayedFlood
	StrategicTargeting
	CertificateManipulationAttack
)

// CoalitionAttackType is the closed union of coordinated attack shapes a
// coalition can run.
type CoalitionAttackType struct {
	Kind AttackKind

	// SplitVote
	TargetBlocks []types.BlockId

	// DelayedFlood
	DelayUntilSlot types.Slot

	// StrategicTargeting
	HighPrioritySlots map[types.Slot]struct{}

	// CertificateManipulation
	ManipulationKind CertificateManipulationKind
	TargetPath       types.VotePath
	DelaySlots       types.Slot
}

// CoalitionAttack is the per-member Strategy a coalition member's
// ByzantineVote dispatches through; it carries the full membership so the
// dispatcher can find the acting node's index (§4.2).
type CoalitionAttack struct {
	Members    []types.NodeId
	AttackType CoalitionAttackType
}

func (CoalitionAttack) Name() string { return "CoalitionAttack" }

func (c CoalitionAttack) memberIndex(node types.NodeId) int {
	for i, m := range c.Members {
		if m == node {
			return i
		}
	}
	return -1
}

// EmitForMember implements the four coalition attack types of §4.3. index
// is the acting member's position within the coalition's Members slice.
func EmitForMember(a CoalitionAttackType, index int, node types.NodeId, slot types.Slot, stake types.StakeAmount) []types.Vote {
	switch a.Kind {
	case SplitVote:
		if len(a.TargetBlocks) == 0 {
			return nil
		}
		block := a.TargetBlocks[index%len(a.TargetBlocks)]
		return []types.Vote{vote(node, slot, block, types.Fast, stake)}

	case DelayedFlood:
		if slot < a.DelayUntilSlot {
			return nil
		}
		votes := make([]types.Vote, 0, 4)
		for _, path := range []types.VotePath{types.Fast, types.Slow} {
			for b := types.BlockId(0); b < 2; b++ {
				votes = append(votes, vote(node, slot, b, path, stake))
			}
		}
		return votes

	case StrategicTargeting:
		if _, ok := a.HighPrioritySlots[slot]; ok {
			votes := make([]types.Vote, 0, 3)
			for b := types.BlockId(0); b < 3; b++ {
				votes = append(votes, vote(node, slot, b, types.Fast, stake))
			}
			return votes
		}
		return []types.Vote{vote(node, slot, 0, types.Fast, stake)}

	case CertificateManipulationAttack:
		switch a.ManipulationKind {
		case PreventCertification:
			return nil
		case ConflictingCertificates:
			block := types.BlockId((uint64(node) + uint64(slot)) % 3)
			return []types.Vote{vote(node, slot, block, a.TargetPath, stake)}
		case DelayedCertification:
			if slot <= a.DelaySlots {
				return nil
			}
			earlier := slot - a.DelaySlots
			return []types.Vote{vote(node, earlier, 0, a.TargetPath, stake)}
		default:
			return nil
		}

	default:
		return nil
	}
}

// Phase is the CoalitionState lifecycle (§3/§4.3).
type Phase uint8

const (
	Preparation Phase = iota
	Execution
	Completion
	Adaptation
)

// Metrics tracks observable coalition activity, a concrete shape
// supplementing the spec's unspecified "metrics" field — see SPEC_FULL.md §4.
type Metrics struct {
	VotesCast           uint32
	CertificatesBlocked uint32
	SlotsTargeted       uint32
}

// CoordinationEvent is one entry in a coalition's coordination history.
type CoordinationEvent struct {
	TargetSlot types.Slot
	At         types.Timestamp
}

// Coalition is the static description of a coordinated attacker group.
type Coalition struct {
	Members             []types.NodeId
	AttackType          CoalitionAttackType
	CoordinationHistory []CoordinationEvent
	TotalStake          types.StakeAmount
	FormationTime       types.Timestamp
}

// State is the dynamic CoalitionState paired 1:1 with a Coalition.
type State struct {
	Active          bool
	Phase           Phase
	Metrics         Metrics
	AdaptationCount uint32
}

// FormCoalition returns a new coalition and its inactive state in the
// Preparation phase; the caller appends them.
func FormCoalition(members []types.NodeId, attackType CoalitionAttackType, formationTime types.Timestamp, totalStake types.StakeAmount) (Coalition, State) {
	return Coalition{
			Members:       members,
			AttackType:    attackType,
			TotalStake:    totalStake,
			FormationTime: formationTime,
		}, State{
			Active: false,
			Phase:  Preparation,
		}
}

// CoordinateAttack transitions a coalition to Execution and records the
// coordination event.
func CoordinateAttack(c *Coalition, s *State, targetSlot types.Slot, now types.Timestamp) {
	s.Phase = Execution
	s.Active = true
	c.CoordinationHistory = append(c.CoordinationHistory, CoordinationEvent{TargetSlot: targetSlot, At: now})
}

// ApplyInstruction applies a delivered CoalitionCoordination message to a
// coalition's dynamic state: phase or active-flag mutation.
func ApplyInstruction(s *State, phase string, activate, deactivate, abort bool) {
	switch phase {
	case "Preparation":
		s.Phase = Preparation
	case "Execution":
		s.Phase = Execution
	case "Completion":
		s.Phase = Completion
	case "Adaptation":
		s.Phase = Adaptation
		s.AdaptationCount++
	}
	if activate {
		s.Active = true
	}
	if deactivate || abort {
		s.Active = false
	}
}
