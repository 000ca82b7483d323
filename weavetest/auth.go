package weavetest

import (
	"context"

	"github.com/iov-one/authlock"
)

// Auth is an x.Authenticator that reports a fixed set of signers, the
// Signers list followed by Signer when it is set.
type Auth struct {
	Signer  authlock.Condition
	Signers []authlock.Condition
}

func (a *Auth) GetConditions(authlock.Context) []authlock.Condition {
	conds := append([]authlock.Condition(nil), a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx authlock.Context, addr authlock.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator that reads its signers from the context.
// Instances with different keys do not see each other's signers.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context in which a authenticates conds.
func (a *CtxAuth) SetConditions(ctx authlock.Context, conds ...authlock.Condition) authlock.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx authlock.Context) []authlock.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]authlock.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx authlock.Context, addr authlock.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []authlock.Condition, addr authlock.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
