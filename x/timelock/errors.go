package timelock

import "github.com/iov-one/authlock/errors"

// timelock takes 1300-1400
var (
	ErrTimestampNotInFuture = errors.Register(1301, "timestamp not in the future")
	ErrTimelockNotExpired   = errors.Register(1302, "timelock not expired")
	ErrTimestampTooLate     = errors.Register(1303, "timestamp too late")
	ErrEscrowExists         = errors.Register(1304, "escrow exists")
	ErrEscrowNotFound       = errors.Register(1305, "escrow not found")
	ErrAuthorityChanged     = errors.Register(1306, "authority changed")
)

// IsTransient returns true if the operation failed only because it was
// submitted too early and can succeed when submitted again later.
func IsTransient(err error) bool {
	return ErrTimelockNotExpired.Is(err)
}
