/*
Package app links together all the various components
to construct the authlock ledger.
*/
package app

import (
	"path/filepath"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/app"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/gconf"
	"github.com/iov-one/authlock/store/leveldb"
	"github.com/iov-one/authlock/x"
	"github.com/iov-one/authlock/x/loader"
	"github.com/iov-one/authlock/x/sigs"
	"github.com/iov-one/authlock/x/timelock"
	"github.com/iov-one/authlock/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle logging, recovery and
// signature verification.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// Transfer is executed by anyone once the time has come and does
		// not have to be signed.
		sigs.NewDecorator().AllowMissingSigs(),
	)
}

// Router returns a router dispatching to the loader, timelock and sigs
// handlers.
func Router(authFn x.Authenticator) *app.Router {
	programs := loader.NewController(loader.NewProgramDataBucket())
	timelocks := timelock.NewController(timelock.TimelockID, timelock.NewEscrowBucket(), programs)

	r := app.NewRouter()
	loader.RegisterRoutes(r, authFn, programs)
	timelock.RegisterRoutes(r, authFn, timelocks)
	sigs.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/programs", "/escrows", "/auth" and "/gconf"
func QueryRouter() authlock.QueryRouter {
	r := authlock.NewQueryRouter()
	r.RegisterAll(
		loader.RegisterQuery,
		timelock.RegisterQuery,
		sigs.RegisterQuery,
		gconf.RegisterQuery,
	)
	return r
}

// Initializers returns the initializers of all extensions that read the
// genesis file.
func Initializers() authlock.Initializer {
	return app.ChainInitializers(
		&loader.Initializer{},
		&timelock.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain.
func Stack() authlock.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// NewLedger returns a ledger using the standard stack on top of given store.
func NewLedger(db authlock.CommitKVStore, logger log.Logger) (*app.Ledger, error) {
	return app.NewLedger(db, Stack(), QueryRouter(), Initializers(), logger)
}

// CommitKVStore returns an initialized store that persists the data in the
// given directory. An empty path returns a memory backed store.
func CommitKVStore(dbPath string) (*leveldb.Store, error) {
	if dbPath == "" {
		return leveldb.OpenMemory()
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database path %q", dbPath)
	}
	return leveldb.Open(path)
}
