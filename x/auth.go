package x

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// Authenticator extracts authentication information from the context. It
// is given to the handler constructors so that the signature scheme can be
// replaced, for example by a test stub.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the transaction.
	GetConditions(authlock.Context) []authlock.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(authlock.Context, authlock.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions returns conditions of all authenticators, in order.
func (m MultiAuth) GetConditions(ctx authlock.Context) []authlock.Condition {
	var res []authlock.Condition
	for _, impl := range m {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true if any of the authenticators knows the address.
func (m MultiAuth) HasAddress(ctx authlock.Context, addr authlock.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition, if any.
func MainSigner(ctx authlock.Context, auth Authenticator) authlock.Condition {
	if signers := auth.GetConditions(ctx); len(signers) > 0 {
		return signers[0]
	}
	return nil
}

// RequireAddress returns ErrUnauthorized unless the given address is
// authenticated in the context. An empty address is never authenticated.
func RequireAddress(ctx authlock.Context, auth Authenticator, addr authlock.Address, what string) error {
	if len(addr) == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "%s not set", what)
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s %s signature required", what, addr)
	}
	return nil
}
