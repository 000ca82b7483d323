package gconf

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// RegisterQuery exposes stored configurations under "/gconf". The query data
// is the name of the package.
func RegisterQuery(qr authlock.QueryRouter) {
	qr.Register("/gconf", queryHandler{})
}

type queryHandler struct{}

func (queryHandler) Query(db authlock.ReadOnlyKVStore, mod string, data []byte) ([]authlock.Model, error) {
	if mod != authlock.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "package name")
	}
	raw, err := db.Get(key(string(data)))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return []authlock.Model{authlock.Pair(data, raw)}, nil
}
