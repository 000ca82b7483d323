package loader

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ authlock.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial program info from genesis and save it in
// the database.
func (*Initializer) FromGenesis(opts authlock.Options, params authlock.GenesisParams, kv authlock.KVStore) error {
	var programs []struct {
		Program   authlock.Address `json:"program"`
		Authority authlock.Address `json:"authority"`
		CodeHash  []byte           `json:"code_hash"`
	}
	if err := opts.ReadOptions("loader", &programs); err != nil {
		return err
	}

	ctrl := NewController(NewProgramDataBucket())
	for i, p := range programs {
		if _, err := ctrl.Deploy(kv, p.Program, p.Authority, p.CodeHash, params.Time); err != nil {
			return errors.Wrapf(err, "program #%d", i)
		}
	}
	return nil
}
