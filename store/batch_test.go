package store

import (
	"testing"

	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestSliceIterator(t *testing.T) {
	models := []Model{
		Pair([]byte("b"), []byte("second")),
		Pair([]byte("a"), []byte("first")),
	}
	it := NewSliceIterator(models)
	for _, want := range models {
		key, value, err := it.Next()
		assert.Nil(t, err)
		assert.Equal(t, want.Key, key)
		assert.Equal(t, want.Value, value)
	}
	_, _, err := it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)

	released := NewSliceIterator(models)
	released.Release()
	_, _, err = released.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	b := NewNonAtomicBatch(db)
	assert.Nil(t, b.Set([]byte("program"), []byte("v1")))
	assert.Nil(t, b.Set([]byte("escrow"), []byte("pending")))
	assert.Nil(t, b.Delete([]byte("program")))
	assert.Equal(t, 3, b.Len())

	assertValue(t, db, []byte("escrow"), nil)

	assert.Nil(t, b.Write())
	assert.Equal(t, 0, b.Len())
	assertValue(t, db, []byte("escrow"), []byte("pending"))
	assertValue(t, db, []byte("program"), nil)
}

func TestIteratorRelease(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("A")))
	cache := db.CacheWrap()
	assert.Nil(t, cache.Set([]byte("b"), []byte("B")))

	open := map[string]func(start, end []byte) (Iterator, error){
		"ascending":  cache.Iterator,
		"descending": cache.ReverseIterator,
	}
	for name, fn := range open {
		t.Run(name, func(t *testing.T) {
			it, err := fn(nil, nil)
			assert.Nil(t, err)
			_, _, err = it.Next()
			assert.Nil(t, err)
			it.Release()
			_, _, err = it.Next()
			assert.IsErr(t, errors.ErrIteratorDone, err)
			// releasing twice is allowed
			it.Release()
		})
	}

	// an open iterator does not block writes
	it, err := cache.Iterator(nil, nil)
	assert.Nil(t, err)
	assert.Nil(t, cache.Set([]byte("c"), []byte("C")))
	assert.Nil(t, db.Delete([]byte("a")))
	it.Release()
}
