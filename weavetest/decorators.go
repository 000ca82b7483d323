package weavetest

import "github.com/iov-one/authlock"

// Decorator is a mock implementation of the authlock.Decorator interface.
//
// It passes the call to the next handler unless an error is configured for
// the method. Every call is counted, whatever its result.
type Decorator struct {
	checkCall   int
	deliverCall int

	// CheckErr and DeliverErr are returned instead of calling the next
	// handler.
	CheckErr   error
	DeliverErr error
}

var _ authlock.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx, next authlock.Checker) (*authlock.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx, next authlock.Deliverer) (*authlock.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CallCount returns the number of Check and Deliver calls.
func (d *Decorator) CallCount() (check, deliver int) {
	return d.checkCall, d.deliverCall
}
