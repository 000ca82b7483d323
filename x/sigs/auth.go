package sigs

import (
	"context"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/x"
)

type signersKey struct{}

func withSigners(ctx authlock.Context, signers []authlock.Condition) authlock.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate exposes the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx authlock.Context) []authlock.Condition {
	signers, _ := ctx.Value(signersKey{}).([]authlock.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx authlock.Context, addr authlock.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
