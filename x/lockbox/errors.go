package lockbox

import "github.com/iov-one/bridge/errors"

// x/lockbox reserves 200 ~ 219.
var (
	ErrAlreadyClosed         = errors.Register(200, "lock-box already closed")
	ErrAlreadyExpired        = errors.Register(201, "lock-box already expired")
	ErrBadSecret             = errors.Register(202, "secret does not match the lock hash")
	ErrNotYetExpired         = errors.Register(203, "lock-box time lock not yet passed")
	ErrNotRevealed           = errors.Register(204, "secret not revealed")
	ErrInsufficientLiquidity = errors.Register(205, "insufficient liquidity")
	ErrFeeExceedsAmount      = errors.Register(206, "fee exceeds amount")
	ErrInactive              = errors.Register(207, "bridge is not active")
	ErrDailyLimitExceeded    = errors.Register(208, "daily swap limit exceeded")
	ErrTransferFailed        = errors.Register(209, "asset transfer failed")
)
