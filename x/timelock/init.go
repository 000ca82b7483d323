package timelock

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/gconf"
)

// Initializer fulfils the Initializer interface to load the configuration
// from the genesis file.
type Initializer struct{}

var _ authlock.Initializer = (*Initializer)(nil)

// FromGenesis stores the timelock configuration found under
// conf.timelock. The configuration is optional. Without it proposals are not
// bounded in time and custody is disabled.
func (*Initializer) FromGenesis(opts authlock.Options, params authlock.GenesisParams, kv authlock.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, configPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}
