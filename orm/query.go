package orm

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// queryHandler serves the raw entries of a single bucket.
type queryHandler struct {
	ns namespace
}

var _ authlock.QueryHandler = queryHandler{}

// Query returns the entry stored under data or, with the prefix mod, every
// entry which primary key starts with data. Returned keys are full
// database keys.
func (q queryHandler) Query(db authlock.ReadOnlyKVStore, mod string, data []byte) ([]authlock.Model, error) {
	switch mod {
	case authlock.KeyQueryMod:
		key := q.ns.key(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []authlock.Model{authlock.Pair(key, value)}, nil
	case authlock.PrefixQueryMod:
		it, err := db.Iterator(q.ns.span(data))
		if err != nil {
			return nil, err
		}
		return collect(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// collect reads all remaining entries and releases the iterator.
func collect(it authlock.Iterator) ([]authlock.Model, error) {
	defer it.Release()

	var res []authlock.Model
	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		case err != nil:
			return nil, err
		}
		res = append(res, authlock.Pair(key, value))
	}
}
