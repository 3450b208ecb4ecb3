// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package economics

import "errors"

// ErrRewardsExceedPool is returned by DistributeRewards when a distribution
// would overdraw the rewards pool.
var ErrRewardsExceedPool = errors.New("economics: distribution exceeds rewards pool")

// ErrWithdrawalExceedsBalance is returned by StakeWithdrawal when the
// requested amount exceeds the validator's current balance.
var ErrWithdrawalExceedsBalance = errors.New("economics: withdrawal exceeds balance")
