package timelock

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/x/loader"
)

// AuthorityBridge gives access to the upgrade authority of a program.
type AuthorityBridge interface {
	// CurrentAuthority returns the upgrade authority of a program. An
	// empty address is returned for an immutable program.
	CurrentAuthority(db authlock.ReadOnlyKVStore, program authlock.Address) (authlock.Address, error)

	// SetAuthority changes the upgrade authority of a program. The acting
	// identity must be the current authority.
	SetAuthority(db authlock.KVStore, program, newAuthority, acting authlock.Address) error
}

var _ AuthorityBridge = (*loader.Controller)(nil)
