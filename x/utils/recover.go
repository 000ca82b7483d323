// Package utils provides decorators shared by every application stack.
package utils

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ authlock.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx authlock.Context, store authlock.KVStore, tx authlock.Tx, next authlock.Checker) (_ *authlock.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx authlock.Context, store authlock.KVStore, tx authlock.Tx, next authlock.Deliverer) (_ *authlock.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
