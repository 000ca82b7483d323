package utils

import (
	"time"

	"github.com/iov-one/authlock"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one log entry per processed transaction, with its route
// and processing time. Failures are logged as errors. Successful deliveries
// are logged as info and successful checks as debug.
type Logging struct{}

var _ authlock.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx, next authlock.Checker) (*authlock.CheckResult, error) {
	entry := startEntry(ctx, tx)
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		entry.fail(err)
		return nil, err
	}
	entry.logger().Debug(res.Log)
	return res, nil
}

func (Logging) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx, next authlock.Deliverer) (*authlock.DeliverResult, error) {
	entry := startEntry(ctx, tx)
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		entry.fail(err)
		return nil, err
	}
	entry.logger().Info(res.Log)
	return res, nil
}

type logEntry struct {
	ctx   authlock.Context
	path  string
	start time.Time
}

func startEntry(ctx authlock.Context, tx authlock.Tx) logEntry {
	return logEntry{ctx: ctx, path: authlock.GetPath(tx), start: time.Now()}
}

func (e logEntry) logger() log.Logger {
	return authlock.GetLogger(e.ctx).With(
		"path", e.path,
		"took_us", time.Since(e.start).Microseconds(),
	)
}

func (e logEntry) fail(err error) {
	e.logger().Error("transaction failed", "err", err)
}
