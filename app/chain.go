package app

import (
	"reflect"

	"github.com/iov-one/authlock"
)

// Decorators is an ordered list of decorators waiting for the handler they
// wrap. The first decorator is the outermost one.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
type Decorators struct {
	chain []authlock.Decorator
}

// ChainDecorators returns a chain of the given decorators. Nil values are
// skipped.
func ChainDecorators(ds ...authlock.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a copy of d extended with ds. Nil values are skipped.
func (d Decorators) Chain(ds ...authlock.Decorator) Decorators {
	chain := make([]authlock.Decorator, len(d.chain), len(d.chain)+len(ds))
	copy(chain, d.chain)
	for _, dec := range ds {
		if !isNil(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

func isNil(d authlock.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns a handler that passes every transaction through the
// decorators, in order, before it reaches h.
func (d Decorators) WithHandler(h authlock.Handler) authlock.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{dec: d.chain[i], next: h}
	}
	return h
}

// decorated binds a decorator to the handler it calls next.
type decorated struct {
	dec  authlock.Decorator
	next authlock.Handler
}

var _ authlock.Handler = decorated{}

func (s decorated) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	return s.dec.Check(ctx, db, tx, s.next)
}

func (s decorated) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	return s.dec.Deliver(ctx, db, tx, s.next)
}
