package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/orm"
	"github.com/iov-one/authlock/store/leveldb"
	"github.com/iov-one/authlock/weavetest"
	"github.com/iov-one/authlock/weavetest/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

var genesisTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testGenesis() *Genesis {
	return &Genesis{
		ChainID:     weavetest.ChainID,
		GenesisTime: genesisTime,
		AppState: authlock.Options{
			"greeting": json.RawMessage(`"hello"`),
		},
	}
}

// greetingInit writes the "greeting" genesis option under the "greeting"
// key.
type greetingInit struct{}

func (greetingInit) FromGenesis(opts authlock.Options, params authlock.GenesisParams, kv authlock.KVStore) error {
	var greeting string
	if err := opts.ReadOptions("greeting", &greeting); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if greeting == "" {
		return errors.Wrap(errors.ErrEmpty, "greeting")
	}
	return kv.Set([]byte("greeting"), []byte(greeting))
}

func TestLedgerInitChain(t *testing.T) {
	db := weavetest.CommitKVStore(t)
	l, err := NewLedger(db, &weavetest.Handler{}, authlock.NewQueryRouter(), greetingInit{}, log.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "", l.ChainID())

	// nothing can be processed before the genesis is loaded
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/msg"}}
	_, err = l.Deliver(genesisTime, tx)
	assert.IsErr(t, errors.ErrState, err)
	_, err = l.Check(genesisTime, tx)
	assert.IsErr(t, errors.ErrState, err)

	require.NoError(t, l.InitChain(testGenesis()))
	assert.Equal(t, weavetest.ChainID, l.ChainID())
	assert.Equal(t, int64(1), l.Height())

	cache := db.CacheWrap()
	defer cache.Discard()
	greeting, err := cache.Get([]byte("greeting"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(greeting))

	// the chain id is set only once
	err = l.InitChain(testGenesis())
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, int64(1), l.Height())
}

func TestLedgerInitChainFailure(t *testing.T) {
	cases := map[string]struct {
		gen     *Genesis
		wantErr *errors.Error
	}{
		"invalid chain id": {
			gen:     &Genesis{ChainID: "x", GenesisTime: genesisTime},
			wantErr: errors.ErrInput,
		},
		"missing genesis time": {
			gen:     &Genesis{ChainID: weavetest.ChainID},
			wantErr: errors.ErrEmpty,
		},
		"initializer failure": {
			gen:     &Genesis{ChainID: weavetest.ChainID, GenesisTime: genesisTime},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := weavetest.CommitKVStore(t)
			l, err := NewLedger(db, &weavetest.Handler{}, authlock.NewQueryRouter(), greetingInit{}, nil)
			require.NoError(t, err)

			err = l.InitChain(tc.gen)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, "", l.ChainID())
			assert.Equal(t, int64(0), l.Height())

			// nothing was written, so the genesis can be loaded later
			require.NoError(t, l.InitChain(testGenesis()))
		})
	}
}

func TestLedgerDeliverIsAtomic(t *testing.T) {
	db := weavetest.CommitKVStore(t)
	h := &weavetest.Handler{
		Write: &authlock.Model{Key: []byte("written"), Value: []byte("value")},
	}
	l, err := NewLedger(db, h, authlock.NewQueryRouter(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, l.InitChain(testGenesis()))

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/msg"}}

	// a failing handler must not leave its writes behind
	h.DeliverErr = errors.ErrUnauthorized
	_, err = l.Deliver(genesisTime, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, int64(1), l.Height())
	assertValue(t, db, "written", nil)

	h.DeliverErr = nil
	_, err = l.Deliver(genesisTime, tx)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), l.Height())
	assertValue(t, db, "written", []byte("value"))

	// check never modifies the state
	_, err = l.Check(genesisTime, tx)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), l.Height())
}

func TestLedgerContext(t *testing.T) {
	db := weavetest.CommitKVStore(t)
	now := genesisTime.Add(time.Hour)
	var (
		gotTime    time.Time
		gotHeight  int64
		gotChainID string
	)
	h := handlerFunc(func(ctx authlock.Context) error {
		var err error
		gotTime, err = authlock.BlockTime(ctx)
		gotHeight, _ = authlock.GetHeight(ctx)
		gotChainID = authlock.GetChainID(ctx)
		return err
	})
	l, err := NewLedger(db, h, authlock.NewQueryRouter(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, l.InitChain(testGenesis()))

	_, err = l.Deliver(now, &weavetest.Tx{})
	require.NoError(t, err)
	assert.Equal(t, now, gotTime)
	assert.Equal(t, int64(2), gotHeight)
	assert.Equal(t, weavetest.ChainID, gotChainID)
}

func TestLedgerQuery(t *testing.T) {
	db := weavetest.CommitKVStore(t)
	bucket := orm.NewModelBucket("greet", &weavetest.Msg{})
	qr := authlock.NewQueryRouter()
	bucket.Register("", qr)

	h := handlerFunc(func(ctx authlock.Context) error { return nil })
	l, err := NewLedger(db, h, qr, nil, nil)
	require.NoError(t, err)
	require.NoError(t, l.InitChain(testGenesis()))

	// write two entities directly through a committed cache
	cache := db.CacheWrap()
	require.NoError(t, bucket.Put(cache, []byte("aa"), &weavetest.Msg{RoutePath: "test/a"}))
	require.NoError(t, bucket.Put(cache, []byte("ab"), &weavetest.Msg{RoutePath: "test/b"}))
	require.NoError(t, cache.Write())
	_, err = db.Commit()
	require.NoError(t, err)

	res, err := l.Query("/greet", []byte("aa"))
	require.NoError(t, err)
	assert.Equal(t, 1, len(res))

	res, err = l.Query("/greet?prefix", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, 2, len(res))

	res, err = l.Query("/greet", []byte("zz"))
	require.NoError(t, err)
	assert.Equal(t, 0, len(res))

	_, err = l.Query("/greet?unknown", []byte("a"))
	assert.IsErr(t, errors.ErrInput, err)

	_, err = l.Query("/unknown", nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestLedgerReopen(t *testing.T) {
	dir := t.TempDir()

	db, err := leveldb.Open(dir)
	require.NoError(t, err)
	h := &weavetest.Handler{
		Write: &authlock.Model{Key: []byte("written"), Value: []byte("value")},
	}
	l, err := NewLedger(db, h, authlock.NewQueryRouter(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, l.InitChain(testGenesis()))
	_, err = l.Deliver(genesisTime, &weavetest.Tx{})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = leveldb.Open(dir)
	require.NoError(t, err)
	defer db.Close()
	l, err = NewLedger(db, h, authlock.NewQueryRouter(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, weavetest.ChainID, l.ChainID())
	assert.Equal(t, int64(2), l.Height())
	assertValue(t, db, "written", []byte("value"))
}

func assertValue(t testing.TB, db authlock.CommitKVStore, key string, want []byte) {
	t.Helper()
	cache := db.CacheWrap()
	defer cache.Discard()
	got, err := cache.Get([]byte(key))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// handlerFunc is a handler that calls the function on deliver and check.
type handlerFunc func(authlock.Context) error

func (fn handlerFunc) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	if err := fn(ctx); err != nil {
		return nil, err
	}
	return &authlock.CheckResult{}, nil
}

func (fn handlerFunc) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	if err := fn(ctx); err != nil {
		return nil, err
	}
	return &authlock.DeliverResult{}, nil
}
