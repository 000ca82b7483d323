package store

import (
	"bytes"

	"github.com/iov-one/authlock/errors"
)

// mergeIterator walks the cached entries and the parent iterator side by
// side. On equal keys the cached entry wins. Deleted entries hide the
// parent value and are never returned.
type mergeIterator struct {
	entries []*entry
	parent  Iterator
	reverse bool

	// next parent element, valid only when pending is set
	pending    bool
	parentKey  []byte
	parentVal  []byte
	parentDone bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(entries []*entry, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		entries: entries,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.fill(); err != nil {
		it.Release()
		return nil, err
	}
	return it, nil
}

// fill loads the next parent element if none is pending.
func (it *mergeIterator) fill() error {
	if it.pending || it.parentDone {
		return nil
	}
	key, value, err := it.parent.Next()
	switch {
	case err == nil:
		it.parentKey, it.parentVal, it.pending = key, value, true
	case errors.ErrIteratorDone.Is(err):
		it.parentDone = true
	default:
		return err
	}
	return nil
}

// before returns true if a is returned before b in the iteration order.
func (it *mergeIterator) before(a, b []byte) bool {
	if it.reverse {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

func (it *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := it.fill(); err != nil {
			return nil, nil, err
		}
		if len(it.entries) == 0 {
			if !it.pending {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
			}
			it.pending = false
			return it.parentKey, it.parentVal, nil
		}

		e := it.entries[0]
		if it.pending && it.before(it.parentKey, e.key) {
			it.pending = false
			return it.parentKey, it.parentVal, nil
		}
		if it.pending && bytes.Equal(it.parentKey, e.key) {
			// shadowed by the cache
			it.pending = false
		}
		it.entries = it.entries[1:]
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

func (it *mergeIterator) Release() {
	if it.parent != nil {
		it.parent.Release()
		it.parent = nil
	}
	it.entries = nil
	it.pending = false
	it.parentDone = true
}
