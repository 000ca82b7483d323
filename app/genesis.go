package app

import (
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID     string           `json:"chain_id"`
	GenesisTime time.Time        `json:"genesis_time"`
	AppState    authlock.Options `json:"app_state"`
}

// Validate returns an error if the genesis cannot be used to initialize a
// ledger.
func (g *Genesis) Validate() error {
	var errs error
	if !authlock.IsValidChainID(g.ChainID) {
		errs = errors.AppendField(errs, "ChainID", errors.ErrInput)
	}
	if g.GenesisTime.IsZero() {
		errs = errors.AppendField(errs, "GenesisTime", errors.ErrEmpty)
	}
	return errs
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "load genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshal genesis file: %s", err)
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...authlock.Initializer) authlock.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []authlock.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts authlock.Options, params authlock.GenesisParams, kv authlock.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, params, kv); err != nil {
			return err
		}
	}
	return nil
}

//------- storing chainID ---------

// _al: is a prefix for ledger internal data
const chainIDKey = "_al:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv authlock.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv authlock.KVStore, chainID string) error {
	if !authlock.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
