package store

import (
	"testing"

	"github.com/iov-one/authlock/weavetest/assert"
)

func TestMemStore(t *testing.T) {
	RunStoreTests(t, func(testing.TB) CacheableKVStore { return MemStore() })
}

// TestBTreeCacheableDevNull makes sure a cache written to a black hole
// does not keep any data.
func TestBTreeCacheableDevNull(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, base.Set(k, v))
	got, err := base.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	assert.Nil(t, base.Write())
	got, err = devnull.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)
}
