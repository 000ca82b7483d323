package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger executes transactions against a persistent store.
//
// Submissions are serialized. Every transaction is processed using a fresh
// cache wrap of the committed state: when the handler returns an error the
// cache is discarded and the state is left untouched, otherwise the cache is
// written and a new version is committed.
type Ledger struct {
	mu sync.Mutex

	db      authlock.CommitKVStore
	handler authlock.Handler
	queries authlock.QueryRouter
	init    authlock.Initializer
	logger  log.Logger

	chainID string
	height  int64
}

// NewLedger returns a ledger that is using given store. If the store was
// already initialized, the chain id and height are loaded from it.
func NewLedger(
	db authlock.CommitKVStore,
	handler authlock.Handler,
	queries authlock.QueryRouter,
	init authlock.Initializer,
	logger log.Logger,
) (*Ledger, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	info, err := db.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "latest version")
	}
	cache := db.CacheWrap()
	defer cache.Discard()
	chainID, err := loadChainID(cache)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Ledger{
		db:      db,
		handler: handler,
		queries: queries,
		init:    init,
		logger:  logger.With("module", "ledger"),
		chainID: chainID,
		height:  info.Version,
	}, nil
}

// ChainID returns the chain id set during the genesis initialization. An
// empty string is returned for a ledger that was not yet initialized.
func (l *Ledger) ChainID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chainID
}

// Height returns the number of committed versions.
func (l *Ledger) Height() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// InitChain writes the chain id and initializes all extensions using given
// genesis. A ledger can be initialized only once.
func (l *Ledger) InitChain(gen *Genesis) error {
	if err := gen.Validate(); err != nil {
		return errors.Wrap(err, "genesis")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cache := l.db.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if l.init != nil {
		params := authlock.GenesisParams{Time: authlock.AsUnixTime(gen.GenesisTime)}
		if err := l.init.FromGenesis(gen.AppState, params, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "initialize from genesis")
		}
	}
	if err := l.commit(cache); err != nil {
		return err
	}
	l.chainID = gen.ChainID
	l.logger.Info("chain initialized", "chainID", gen.ChainID, "height", l.height)
	return nil
}

// Check runs the transaction through the handler without changing the
// state.
func (l *Ledger) Check(blockTime time.Time, tx authlock.Tx) (*authlock.CheckResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	cache := l.db.CacheWrap()
	defer cache.Discard()
	return l.handler.Check(l.context(blockTime, l.height+1), cache, tx)
}

// Deliver executes the transaction. The state is changed only if the whole
// handler stack succeeds.
func (l *Ledger) Deliver(blockTime time.Time, tx authlock.Tx) (*authlock.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	cache := l.db.CacheWrap()
	res, err := l.handler.Deliver(l.context(blockTime, l.height+1), cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := l.commit(cache); err != nil {
		return nil, err
	}
	return res, nil
}

// Query returns all models found by the query handler registered for the
// path. A query modifier can be appended to the path after a question mark,
// for example "/escrows?prefix".
func (l *Ledger) Query(path string, data []byte) ([]authlock.Model, error) {
	path, mod := splitPath(path)
	qh := l.queries.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "query path %q", path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cache := l.db.CacheWrap()
	defer cache.Discard()
	return qh.Query(cache, mod, data)
}

// commit writes given cache and commits a new version of the state.
func (l *Ledger) commit(cache authlock.KVCacheWrap) error {
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write cache")
	}
	info, err := l.db.Commit()
	if err != nil {
		return errors.Wrap(err, "commit")
	}
	l.height = info.Version
	return nil
}

func (l *Ledger) context(blockTime time.Time, height int64) authlock.Context {
	ctx := context.Background()
	ctx = authlock.WithChainID(ctx, l.chainID)
	ctx = authlock.WithHeight(ctx, height)
	ctx = authlock.WithBlockTime(ctx, blockTime)
	ctx = authlock.WithLogger(ctx, l.logger)
	ctx = authlock.WithLogInfo(ctx, "height", height)
	return ctx
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}
