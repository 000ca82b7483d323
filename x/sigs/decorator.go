/*
Package sigs verifies ed25519 signatures of transactions and keeps a
sequence per signer to reject replays.
*/
package sigs

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// RegisterQuery exposes the signers under "/auth".
func RegisterQuery(qr authlock.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and passes the signers
// down the stack in the context, where Authenticate finds them.
type Decorator struct {
	allowUnsigned bool
}

var _ authlock.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects unsigned transactions.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy of the decorator that lets unsigned
// transactions through with no signers.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowUnsigned = true
	return d
}

func (d Decorator) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx, next authlock.Checker) (*authlock.CheckResult, error) {
	ctx, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d Decorator) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx, next authlock.Deliverer) (*authlock.DeliverResult, error) {
	ctx, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) verify(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (authlock.Context, error) {
	signers := []authlock.Condition{}
	if stx, ok := tx.(SignedTx); ok {
		verified, err := VerifyTxSignatures(db, stx, authlock.GetChainID(ctx))
		if err != nil {
			return nil, err
		}
		signers = append(signers, verified...)
	}
	if len(signers) == 0 && !d.allowUnsigned {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction not signed")
	}
	return withSigners(ctx, signers), nil
}
