package orm

import (
	"testing"

	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/store"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestModelBucketPrefixScan(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	other := NewModelBucket("cntsx", &counter{})

	assert.Nil(t, b.Put(db, []byte("a1"), &counter{Count: 1}))
	assert.Nil(t, b.Put(db, []byte("a2"), &counter{Count: 2}))
	assert.Nil(t, b.Put(db, []byte("b1"), &counter{Count: 3}))
	assert.Nil(t, other.Put(db, []byte("a3"), &counter{Count: 4}))

	cases := map[string]struct {
		prefix   []byte
		reverse  bool
		wantKeys []string
		wantCnt  []int64
	}{
		"all ascending": {
			wantKeys: []string{"a1", "a2", "b1"},
			wantCnt:  []int64{1, 2, 3},
		},
		"all descending": {
			reverse:  true,
			wantKeys: []string{"b1", "a2", "a1"},
			wantCnt:  []int64{3, 2, 1},
		},
		"prefix": {
			prefix:   []byte("a"),
			wantKeys: []string{"a1", "a2"},
			wantCnt:  []int64{1, 2},
		},
		"no match": {
			prefix: []byte("c"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := b.PrefixScan(db, tc.prefix, tc.reverse)
			assert.Nil(t, err)
			defer it.Release()

			var (
				keys []string
				cnts []int64
			)
			for {
				var c counter
				key, err := it.LoadNext(&c)
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				assert.Nil(t, err)
				keys = append(keys, string(key))
				cnts = append(cnts, c.Count)
			}
			assert.Equal(t, tc.wantKeys, keys)
			assert.Equal(t, tc.wantCnt, cnts)
		})
	}
}

func TestLoadNextWrongDestination(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	assert.Nil(t, b.Put(db, []byte("a"), &counter{Count: 1}))

	it, err := b.PrefixScan(db, nil, false)
	assert.Nil(t, err)
	defer it.Release()

	var l label
	_, err = it.LoadNext(&l)
	assert.IsErr(t, errors.ErrType, err)
}
