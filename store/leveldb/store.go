/*
Package leveldb provides a persistent CommitKVStore on top of goleveldb.

All changes of a cache wrap are written with a single leveldb batch, so a
committed transaction is either fully on disk or not at all. Commit bumps
the version and chains a hash of the written operations, which is enough to
tell two diverging databases apart.
*/
package leveldb

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"sync"

	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/store"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	lvlstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	// all application data lives under this prefix
	dataPrefix = []byte{'d'}
	// end of the data keys range
	dataEnd = []byte{'e'}

	versionKey = []byte("m/version")
	hashKey    = []byte("m/hash")
)

// Store is a leveldb backed key value store.
type Store struct {
	db *leveldb.DB

	mu      sync.Mutex
	version int64
	hash    []byte
	// digest accumulates all operations written since the last commit
	digest hash.Hash
}

var (
	_ store.CacheableKVStore = (*Store)(nil)
	_ store.CommitKVStore    = (*Store)(nil)
)

// Open opens or creates a database in the given directory and loads the
// latest committed version.
func Open(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{
		ErrorIfMissing: false,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", dir, err)
	}
	return newStore(db)
}

// OpenMemory returns a store that keeps all data in memory. It is meant to
// be used in tests.
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(lvlstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open memory: %s", err)
	}
	return newStore(db)
}

func newStore(db *leveldb.DB) (*Store, error) {
	s := &Store{
		db:     db,
		digest: sha256.New(),
	}
	if err := s.LoadLatestVersion(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "close: %s", err)
	}
	return nil
}

// Get returns the value stored under the key or nil if not found.
func (s *Store) Get(key []byte) ([]byte, error) {
	val, err := s.db.Get(dataKey(key), nil)
	switch {
	case err == nil:
		return val, nil
	case err == leveldberrors.ErrNotFound:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
}

// Has returns true if the key exists.
func (s *Store) Has(key []byte) (bool, error) {
	ok, err := s.db.Has(dataKey(key), nil)
	if err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "has: %s", err)
	}
	return ok, nil
}

// Set writes the value directly to the database. Prefer CacheWrap and a
// single Write for anything that must be atomic.
func (s *Store) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

// Delete removes the key directly from the database.
func (s *Store) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// Iterator returns an ascending iterator over [start, end).
func (s *Store) Iterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, false), nil
}

// ReverseIterator returns a descending iterator over [start, end).
func (s *Store) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, true), nil
}

func (s *Store) iterate(start, end []byte, reverse bool) *lvlIterator {
	rng := &util.Range{Start: dataPrefix, Limit: dataEnd}
	if start != nil {
		rng.Start = dataKey(start)
	}
	if end != nil {
		rng.Limit = dataKey(end)
	}
	return &lvlIterator{
		it:      s.db.NewIterator(rng, nil),
		reverse: reverse,
	}
}

// NewBatch returns an atomic batch writing to this database.
func (s *Store) NewBatch() store.Batch {
	return &batch{
		store: s,
		b:     new(leveldb.Batch),
	}
}

// CacheWrap returns a cache that writes all its changes in one atomic
// batch.
func (s *Store) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit creates a new version that covers all writes since the previous
// commit.
func (s *Store) Commit() (store.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.version + 1
	h := sha256.New()
	_, _ = h.Write(s.hash)
	_, _ = h.Write(encodeVersion(version))
	_, _ = h.Write(s.digest.Sum(nil))
	sum := h.Sum(nil)

	b := new(leveldb.Batch)
	b.Put(versionKey, encodeVersion(version))
	b.Put(hashKey, sum)
	if err := s.db.Write(b, &opt.WriteOptions{Sync: true}); err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}
	s.version = version
	s.hash = sum
	s.digest.Reset()
	return store.CommitID{Version: version, Hash: sum}, nil
}

// LoadLatestVersion reads the last committed version information.
func (s *Store) LoadLatestVersion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.db.Get(versionKey, nil)
	switch {
	case err == leveldberrors.ErrNotFound:
		s.version, s.hash = 0, nil
		return nil
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "load version: %s", err)
	}
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrDatabase, "invalid version record: %x", raw)
	}
	sum, err := s.db.Get(hashKey, nil)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load hash: %s", err)
	}
	s.version = int64(binary.BigEndian.Uint64(raw))
	s.hash = sum
	return nil
}

// LatestVersion returns the last committed version information.
func (s *Store) LatestVersion() (store.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.CommitID{Version: s.version, Hash: s.hash}, nil
}

func (s *Store) write(ops []store.Op) error {
	b := new(leveldb.Batch)
	for _, op := range ops {
		if op.IsDelete() {
			b.Delete(dataKey(op.Key()))
		} else {
			b.Put(dataKey(op.Key()), op.Value())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Write(b, nil); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write batch: %s", err)
	}
	_, _ = s.digest.Write(b.Dump())
	return nil
}

// batch collects operations and writes them in a single leveldb batch.
type batch struct {
	store *Store
	b     *leveldb.Batch
	ops   []store.Op
}

var _ store.Batch = (*batch)(nil)

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

func (b *batch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	if err := b.store.write(b.ops); err != nil {
		return err
	}
	b.ops = nil
	return nil
}

type lvlIterator struct {
	it      iterator.Iterator
	reverse bool
	started bool
}

var _ store.Iterator = (*lvlIterator)(nil)

func (i *lvlIterator) Next() (key, value []byte, err error) {
	var ok bool
	switch {
	case !i.started && i.reverse:
		ok = i.it.Last()
	case !i.started:
		ok = i.it.First()
	case i.reverse:
		ok = i.it.Prev()
	default:
		ok = i.it.Next()
	}
	i.started = true
	if !ok {
		if err := i.it.Error(); err != nil {
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "iterator: %s", err)
		}
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "leveldb iterator")
	}
	// leveldb reuses the buffers, copy before returning
	key = append([]byte(nil), i.it.Key()[len(dataPrefix):]...)
	value = append([]byte(nil), i.it.Value()...)
	return key, value, nil
}

func (i *lvlIterator) Release() {
	i.it.Release()
}

func dataKey(key []byte) []byte {
	k := make([]byte, 0, len(dataPrefix)+len(key))
	k = append(k, dataPrefix...)
	return append(k, key...)
}

func encodeVersion(v int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(v))
	return raw
}
