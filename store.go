package authlock

// ReadOnlyKVStore gives read access to an ordered key value space. Keys
// must not be nil.
type ReadOnlyKVStore interface {
	// Get returns the value stored under key or nil if there is none.
	Get(key []byte) ([]byte, error)

	// Has reports whether a value is stored under key.
	Has(key []byte) (bool, error)

	// Iterator walks the keys in [start, end) in ascending order. A nil
	// start or end leaves that side of the range open. The range must not
	// be written to while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks the same range as Iterator, in descending
	// order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes to a key value space. Implementations must not modify
// or keep references to the given slices beyond the call.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a readable and writable key value space.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	// NewBatch returns a batch of writes applied together on Write.
	NewBatch() Batch
}

// Batch collects writes until Write applies them to the store it was
// created from.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator returns the entries of a key range one by one.
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Release()
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		}
//		...
//	}
type Iterator interface {
	// Next returns the next entry. ErrIteratorDone is returned once the
	// range is exhausted. Returned slices must be treated as read only.
	Next() (key, value []byte, err error)

	// Release frees resources held by the iterator. It is safe to call
	// more than once.
	Release()
}

// CacheableKVStore can stage writes in a cache layer.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch pad on top of another store. Reads see the
// staged writes merged with the parent content. Write flushes the staged
// writes to the parent, Discard drops them. Cache layers can be nested.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. Changes are made through a
// cache layer and become durable with Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	// Commit persists all written changes as the next version.
	Commit() (CommitID, error)

	// LoadLatestVersion reloads the last committed version.
	LoadLatestVersion() error

	// LatestVersion describes the last committed version.
	LatestVersion() (CommitID, error)

	Close() error
}

// CommitID identifies a committed version by its sequence number and the
// hash of its content.
type CommitID struct {
	Version int64
	Hash    []byte
}
