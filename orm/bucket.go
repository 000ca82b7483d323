package orm

import (
	"reflect"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// ModelBucket keeps models of a single type.
type ModelBucket interface {
	// One loads the model stored under key into dest. ErrNotFound is
	// returned if there is none and ErrType if dest is not of the bucket
	// model type.
	One(db authlock.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if a model is stored under key, ErrNotFound
	// otherwise.
	Has(db authlock.ReadOnlyKVStore, key []byte) error

	// Put validates and stores m under key, overwriting any previous
	// value.
	Put(db authlock.KVStore, key []byte, m Model) error

	// Delete removes the model stored under key. ErrNotFound is returned
	// if there is none.
	Delete(db authlock.KVStore, key []byte) error

	// PrefixScan iterates over all models which key starts with prefix,
	// in ascending or descending key order. A nil prefix iterates over
	// the whole bucket.
	PrefixScan(db authlock.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error)

	// Register exposes the bucket content to queries under /name. An
	// empty name falls back to the bucket name.
	Register(name string, r authlock.QueryRouter)
}

// NewModelBucket returns a bucket named name that stores models of the same
// type as m. It panics if the name is not 3 to 10 lowercase letters or
// underscores.
func NewModelBucket(name string, m Model) ModelBucket {
	return &modelBucket{
		name:  name,
		ns:    newNamespace(name),
		model: reflect.TypeOf(m),
	}
}

type modelBucket struct {
	name  string
	ns    namespace
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (b *modelBucket) One(db authlock.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.ns.key(key))
	if err != nil {
		return errors.Wrap(err, "read")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %q", b.name, key)
	}
	return b.decode(raw, dest)
}

func (b *modelBucket) Has(db authlock.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(b.ns.key(key))
	switch {
	case err != nil:
		return errors.Wrap(err, "read")
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %q", b.name, key)
	}
	return nil
}

func (b *modelBucket) Put(db authlock.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := b.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := authlock.Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(b.ns.key(key), raw); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

func (b *modelBucket) Delete(db authlock.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	return db.Delete(b.ns.key(key))
}

func (b *modelBucket) PrefixScan(db authlock.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	start, end := b.ns.span(prefix)
	var (
		it  authlock.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	return &modelIterator{it: it, bucket: b}, nil
}

func (b *modelBucket) Register(name string, r authlock.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, queryHandler{ns: b.ns})
}

func (b *modelBucket) checkType(m Model) error {
	if got := reflect.TypeOf(m); got != b.model {
		return errors.Wrapf(errors.ErrType, "%s bucket holds %s, not %s", b.name, b.model, got)
	}
	return nil
}

// decode reads a stored value. A value that cannot be decoded means the
// database content is broken.
func (b *modelBucket) decode(raw []byte, dest Model) error {
	if err := authlock.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrState, "%s entry: %s", b.name, err)
	}
	return nil
}
