package authlock

import (
	"encoding/json"
	"regexp"

	"github.com/iov-one/authlock/errors"
)

// Handler processes the messages of one extension. Check runs against a
// throwaway copy of the state to admit a transaction. Deliver runs when
// the transaction is included in a block and its writes are kept.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction without persisting its effects.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around the next handler of a chain. It may change the
// context, inspect the result or stop the processing by returning early.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds a handler to the route of a message type.
type Registry interface {
	Handle(Msg, Handler)
}

// CheckResult is returned by a successful Check.
type CheckResult struct {
	// Data is a machine readable result, for example a created key.
	Data []byte
	// Log is a human readable note.
	Log string
}

// DeliverResult is returned by a successful Deliver.
type DeliverResult struct {
	Data []byte
	Log  string
}

// Options is the genesis application state. Every extension reads its
// section by name.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(opts Options, params GenesisParams, kv KVStore) error
}

// GenesisParams are the chain wide genesis values available to every
// Initializer.
type GenesisParams struct {
	// Time is the genesis time, used as the current time while the
	// genesis state is validated.
	Time UnixTime
}

// IsValidPath reports whether s can be used as a message route.
var IsValidPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString
