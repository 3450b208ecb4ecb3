// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrFastNotAboveSlow        = errors.New("config: fast quorum percent must exceed slow quorum percent")
	ErrSlowNotAboveByzantine   = errors.New("config: slow quorum percent must exceed byzantine threshold")
	ErrInvalidTimeoutThreshold = errors.New("config: timeout threshold must be >= 1")
	ErrInvalidSkipCertPercent  = errors.New("config: skip-cert node percent must be in (0, 100]")
	ErrInvalidSlotHorizon      = errors.New("config: slot horizon must be >= 1")
	ErrInvalidWindowSize       = errors.New("config: window size must be >= 1")
	ErrInvalidPacketLoss       = errors.New("config: packet loss rate must be in [0, 1]")
	ErrInvalidRewardRate       = errors.New("config: reward rate must be >= 0")
)
