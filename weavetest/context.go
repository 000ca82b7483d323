package weavetest

import (
	"context"
	"time"

	"github.com/iov-one/authlock"
)

// ChainID is the chain identifier used by Ctx.
const ChainID = "test-chain"

// Ctx returns a context prepared the same way the ledger prepares it for
// every transaction, with the given block time.
func Ctx(blockTime time.Time) authlock.Context {
	ctx := context.Background()
	ctx = authlock.WithChainID(ctx, ChainID)
	ctx = authlock.WithHeight(ctx, 1)
	ctx = authlock.WithBlockTime(ctx, blockTime)
	return ctx
}
