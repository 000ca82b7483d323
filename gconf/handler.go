package gconf

import (
	"reflect"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/x"
)

// OwnedConfig is a configuration that names the only address allowed to
// change it.
type OwnedConfig interface {
	Configuration
	GetOwner() authlock.Address
}

// UpdateMsg is implemented by messages that change a configuration.
// ConfigPatch returns the new values or nil. Zero fields of the patch keep
// the current value.
type UpdateMsg interface {
	authlock.Msg
	ConfigPatch() OwnedConfig
}

// UpdateHandler applies UpdateMsg messages to the configuration of one
// package. The message must be signed by the current owner.
type UpdateHandler struct {
	pkg     string
	auth    x.Authenticator
	newConf func() OwnedConfig
}

var _ authlock.Handler = (*UpdateHandler)(nil)

// NewUpdateHandler returns a handler for the configuration of pkg. newConf
// returns an empty instance to load the current configuration into.
func NewUpdateHandler(pkg string, auth x.Authenticator, newConf func() OwnedConfig) *UpdateHandler {
	return &UpdateHandler{pkg: pkg, auth: auth, newConf: newConf}
}

func (h *UpdateHandler) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &authlock.CheckResult{}, nil
}

func (h *UpdateHandler) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &authlock.DeliverResult{}, nil
}

func (h *UpdateHandler) update(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}
	upd, ok := msg.(UpdateMsg)
	if !ok {
		return errors.Wrapf(errors.ErrType, "%T is not a configuration update", msg)
	}
	if err := upd.Validate(); err != nil {
		return err
	}
	patch := upd.ConfigPatch()
	if patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}

	conf := h.newConf()
	switch err := Load(db, h.pkg, conf); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrUnauthorized, "%s configuration has no owner", h.pkg)
	case err != nil:
		return errors.Wrap(err, "load configuration")
	}
	if err := x.RequireAddress(ctx, h.auth, conf.GetOwner(), "configuration owner"); err != nil {
		return err
	}
	if err := merge(conf, patch); err != nil {
		return err
	}
	return Save(db, h.pkg, conf)
}

// merge copies every non zero field of patch into conf. Both must point to
// the same struct type.
func merge(conf, patch OwnedConfig) error {
	dst, src := reflect.ValueOf(conf), reflect.ValueOf(patch)
	if dst.Type() != src.Type() || dst.Kind() != reflect.Ptr || dst.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(errors.ErrType, "cannot patch %T with %T", conf, patch)
	}
	dst, src = dst.Elem(), src.Elem()
	for i := 0; i < src.NumField(); i++ {
		if f := src.Field(i); !f.IsZero() {
			dst.Field(i).Set(f)
		}
	}
	return nil
}
