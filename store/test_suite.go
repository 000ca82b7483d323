package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/weavetest/assert"
)

// StoreOpener returns a new, empty store. The store must be released when
// the test finishes.
type StoreOpener func(t testing.TB) CacheableKVStore

// RunStoreTests checks that a store implementation behaves as the
// CacheableKVStore contract requires. It is shared by every implementation.
func RunStoreTests(t *testing.T, open StoreOpener) {
	t.Run("get and set through cache layers", func(t *testing.T) {
		testCacheLayers(t, open(t))
	})
	t.Run("child overrides parent", func(t *testing.T) {
		testChildOverrides(t, open)
	})
	t.Run("iterators", func(t *testing.T) {
		testIterators(t, open)
	})
}

func testCacheLayers(t *testing.T, base CacheableKVStore) {
	program, authority := []byte("program"), []byte("authority")
	assertValue(t, base, program, nil)
	assert.Nil(t, base.Set(program, authority))
	assertValue(t, base, program, authority)

	// a write into the cache is not visible in the parent until written
	cache := base.CacheWrap()
	escrow, target := []byte("escrow"), []byte("target")
	assert.Nil(t, cache.Set(escrow, target))
	assertValue(t, cache, program, authority)
	assertValue(t, cache, escrow, target)
	assertValue(t, base, escrow, nil)
	assert.Nil(t, cache.Write())
	assertValue(t, base, escrow, target)

	// a discarded cache leaves no trace
	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("lost"), []byte("value")))
	assert.Nil(t, discarded.Delete(program))
	discarded.Discard()
	assertValue(t, base, []byte("lost"), nil)
	assertValue(t, base, program, authority)

	// deletes are written as well
	deleting := base.CacheWrap()
	assert.Nil(t, deleting.Delete(escrow))
	assertValue(t, deleting, escrow, nil)
	assert.Nil(t, deleting.Write())
	assertValue(t, base, escrow, nil)
	assertValue(t, base, program, authority)
}

func testChildOverrides(t *testing.T, open StoreOpener) {
	cases := map[string]struct {
		parent     []Op
		child      []Op
		wantParent []Model
		wantChild  []Model
	}{
		"overwrite one, delete another, add a third": {
			parent:     []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2"))},
			child:      []Op{SetOp([]byte("a"), []byte("10")), DelOp([]byte("b")), SetOp([]byte("c"), []byte("3"))},
			wantParent: []Model{Pair([]byte("a"), []byte("1")), Pair([]byte("b"), []byte("2")), Pair([]byte("c"), nil)},
			wantChild:  []Model{Pair([]byte("a"), []byte("10")), Pair([]byte("b"), nil), Pair([]byte("c"), []byte("3"))},
		},
		"delete then set again": {
			parent:     []Op{SetOp([]byte("a"), []byte("1"))},
			child:      []Op{DelOp([]byte("a")), SetOp([]byte("a"), []byte("2"))},
			wantParent: []Model{Pair([]byte("a"), []byte("1"))},
			wantChild:  []Model{Pair([]byte("a"), []byte("2"))},
		},
		"set then delete": {
			child:      []Op{SetOp([]byte("a"), []byte("1")), DelOp([]byte("a"))},
			wantParent: []Model{Pair([]byte("a"), nil)},
			wantChild:  []Model{Pair([]byte("a"), nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := open(t)
			applyOps(t, parent, tc.parent)
			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			for _, m := range tc.wantParent {
				assertValue(t, parent, m.Key, m.Value)
			}
			for _, m := range tc.wantChild {
				assertValue(t, child, m.Key, m.Value)
			}
			assert.Nil(t, child.Write())
			for _, m := range tc.wantChild {
				assertValue(t, parent, m.Key, m.Value)
			}
		})
	}
}

func testIterators(t *testing.T, open StoreOpener) {
	// keys are k00 to k19, the parent holds the even ones and the child
	// the odd ones
	var even, odd, all []Model
	for i := 0; i < 20; i++ {
		m := Pair([]byte(fmt.Sprintf("k%02d", i)), []byte(fmt.Sprintf("v%d", i)))
		all = append(all, m)
		if i%2 == 0 {
			even = append(even, m)
		} else {
			odd = append(odd, m)
		}
	}
	overwritten := Pair(all[4].Key, []byte("new"))

	cases := map[string]struct {
		parent  []Op
		child   []Op
		start   []byte
		end     []byte
		reverse bool
		want    []Model
	}{
		"child only": {
			child: setOps(all),
			want:  all,
		},
		"parent only": {
			parent: setOps(all),
			want:   all,
		},
		"parent and child merged": {
			parent: setOps(even),
			child:  setOps(odd),
			want:   all,
		},
		"merged with bounds": {
			parent: setOps(even),
			child:  setOps(odd),
			start:  all[3].Key,
			end:    all[11].Key,
			want:   all[3:11],
		},
		"merged in reverse": {
			parent:  setOps(even),
			child:   setOps(odd),
			reverse: true,
			want:    reversed(all),
		},
		"reverse with bounds": {
			parent:  setOps(even),
			child:   setOps(odd),
			start:   all[5].Key,
			end:     all[9].Key,
			reverse: true,
			want:    reversed(all[5:9]),
		},
		"deleted in child are skipped": {
			parent: setOps(all),
			child:  delOps(odd),
			want:   even,
		},
		"child overwrites parent": {
			parent: setOps(all[:6]),
			child:  []Op{SetOp(overwritten.Key, overwritten.Value)},
			want:   append(append(append([]Model{}, all[:4]...), overwritten), all[5]),
		},
		"end bound cuts off everything": {
			parent: setOps(all[3:]),
			end:    all[3].Key,
			want:   nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := open(t)
			applyOps(t, parent, tc.parent)
			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = child.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = child.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			defer it.Release()

			var got []Model
			for {
				key, value, err := it.Next()
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				assert.Nil(t, err)
				got = append(got, Pair(key, value))
			}
			assertModels(t, tc.want, got)
		})
	}
}

func assertValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func assertModels(t testing.TB, want, got []Model) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("want %d models, got %d", len(want), len(got))
	}
	for i := range want {
		if !bytes.Equal(want[i].Key, got[i].Key) || !bytes.Equal(want[i].Value, got[i].Value) {
			t.Fatalf("model %d: want %s=%s, got %s=%s", i, want[i].Key, want[i].Value, got[i].Key, got[i].Value)
		}
	}
	sorted := sort.SliceIsSorted(got, func(i, j int) bool {
		return bytes.Compare(got[i].Key, got[j].Key) < 0
	})
	reverseSorted := sort.SliceIsSorted(got, func(i, j int) bool {
		return bytes.Compare(got[i].Key, got[j].Key) > 0
	})
	if !sorted && !reverseSorted {
		t.Fatal("iterator result is not ordered")
	}
}

func applyOps(t testing.TB, db SetDeleter, ops []Op) {
	t.Helper()
	for _, op := range ops {
		assert.Nil(t, op.Apply(db))
	}
}

func setOps(ms []Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = SetOp(m.Key, m.Value)
	}
	return ops
}

func delOps(ms []Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = DelOp(m.Key)
	}
	return ops
}

func reversed(ms []Model) []Model {
	res := make([]Model, len(ms))
	for i, m := range ms {
		res[len(ms)-1-i] = m
	}
	return res
}
