package orm

import (
	"github.com/iov-one/authlock"
)

// ModelIterator loads models one by one.
type ModelIterator interface {
	// LoadNext loads the next model into dest and returns its primary
	// key. ErrIteratorDone is returned once all models were read.
	LoadNext(dest Model) ([]byte, error)

	// Release frees the underlying database iterator.
	Release()
}

type modelIterator struct {
	it     authlock.Iterator
	bucket *modelBucket
}

func (i *modelIterator) LoadNext(dest Model) ([]byte, error) {
	if err := i.bucket.checkType(dest); err != nil {
		return nil, err
	}
	key, raw, err := i.it.Next()
	if err != nil {
		return nil, err
	}
	if err := i.bucket.decode(raw, dest); err != nil {
		return nil, err
	}
	return i.bucket.ns.strip(key), nil
}

func (i *modelIterator) Release() {
	i.it.Release()
}
