package store

import "github.com/iov-one/authlock"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = authlock.ReadOnlyKVStore
type SetDeleter = authlock.SetDeleter
type KVStore = authlock.KVStore
type Batch = authlock.Batch
type Iterator = authlock.Iterator
type CacheableKVStore = authlock.CacheableKVStore
type KVCacheWrap = authlock.KVCacheWrap
type CommitKVStore = authlock.CommitKVStore
type CommitID = authlock.CommitID
type Model = authlock.Model

var Pair = authlock.Pair
