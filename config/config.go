// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the tunable reference constants of the consensus
// model (quorum percentages, timeouts, window sizing, slashing rates) as a
// single validated bundle, the way presets are managed for the sampling
// parameters they were adapted from.
package config

import "time"

// Parameters bundles every reference constant named in spec.md §6. Each
// preset below is a complete, internally consistent bundle; Validate
// catches a hand-edited one that drifts out of range.
type Parameters struct {
	// Quorum percentages, integer-floor arithmetic.
	FastQuorumPercent  int
	SlowQuorumPercent  int
	ByzantineThreshold int

	// Timeout / liveness.
	TimeoutThreshold   uint32
	SkipCertNodePercent int
	SlotHorizon        uint32
	TicksPerSlot        uint64

	// Leader rotation.
	WindowSize    uint32
	FinalityDepth uint32
	HistoryCap    int

	// Network defaults.
	DefaultLatency     time.Duration
	DefaultPacketLoss  float64
	CongestionThreshold float64
	CongestionRecovery  float64

	// Rotor.
	RotorBaseChunks uint32

	// Economic.
	SlashingMinorPercent    uint64
	SlashingModeratePercent uint64
	SlashingSeverePercent   uint64
	SlashingCriticalPercent uint64
	RewardRate              float64

	// Bounded-finalization-time bound (§6): finalization_times[k] - k*1000
	// must not exceed min(FastFinalityBound, 2*SlowFinalityBound).
	FastFinalityBound time.Duration
	SlowFinalityBound time.Duration
}

// Reference returns the small-model reference bundle of §6/§8: slot
// horizon 5, window size 10.
func Reference() Parameters {
	return Parameters{
		FastQuorumPercent:   80,
		SlowQuorumPercent:   60,
		ByzantineThreshold:  20,
		TimeoutThreshold:    3,
		SkipCertNodePercent: 60,
		SlotHorizon:         5,
		TicksPerSlot:        10,
		WindowSize:          10,
		FinalityDepth:       2,
		HistoryCap:          100,
		DefaultLatency:      50 * time.Millisecond,
		DefaultPacketLoss:   0.01,
		CongestionThreshold: 0.8,
		CongestionRecovery:  0.1,
		RotorBaseChunks:     10,
		SlashingMinorPercent:    5,
		SlashingModeratePercent: 15,
		SlashingSeverePercent:   30,
		SlashingCriticalPercent: 50,
		RewardRate:         0.05,
		FastFinalityBound:  500 * time.Millisecond,
		SlowFinalityBound:  1000 * time.Millisecond,
	}
}

// Extended raises the slot horizon and window size for a longer-running
// simulation, otherwise matching Reference — the "production implementation"
// §4.1 alludes to without pinning concrete numbers.
func Extended() Parameters {
	p := Reference()
	p.SlotHorizon = 1000
	p.WindowSize = 50
	p.HistoryCap = 1000
	return p
}

// Validate reports the first out-of-range field found as one of the
// sentinel errors declared in errors.go.
func (p Parameters) Validate() error {
	switch {
	case p.FastQuorumPercent <= p.SlowQuorumPercent:
		return ErrFastNotAboveSlow
	case p.SlowQuorumPercent <= p.ByzantineThreshold:
		return ErrSlowNotAboveByzantine
	case p.TimeoutThreshold == 0:
		return ErrInvalidTimeoutThreshold
	case p.SkipCertNodePercent <= 0 || p.SkipCertNodePercent > 100:
		return ErrInvalidSkipCertPercent
	case p.SlotHorizon == 0:
		return ErrInvalidSlotHorizon
	case p.WindowSize == 0:
		return ErrInvalidWindowSize
	case p.DefaultPacketLoss < 0 || p.DefaultPacketLoss > 1:
		return ErrInvalidPacketLoss
	case p.RewardRate < 0:
		return ErrInvalidRewardRate
	default:
		return nil
	}
}
