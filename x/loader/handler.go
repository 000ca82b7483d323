package loader

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/x"
)

// RegisterRoutes registers handlers for all loader messages.
func RegisterRoutes(r authlock.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&DeployMsg{}, &deployHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SetAuthorityMsg{}, &setAuthorityHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery registers program data records under /programs. Records
// are keyed by their derived address.
func RegisterQuery(qr authlock.QueryRouter) {
	NewProgramDataBucket().Register("programs", qr)
}

type deployHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ authlock.Handler = (*deployHandler)(nil)

func (h *deployHandler) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &authlock.CheckResult{}, nil
}

func (h *deployHandler) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := authlock.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	data, err := h.ctrl.Deploy(db, msg.Program, msg.Authority, msg.CodeHash, authlock.AsUnixTime(now))
	if err != nil {
		return nil, err
	}
	authlock.GetLogger(ctx).Info("program deployed",
		"program", msg.Program,
		"authority", msg.Authority)

	addr, _, err := ProgramDataAddress(data.Program)
	if err != nil {
		return nil, err
	}
	return &authlock.DeliverResult{Data: addr}, nil
}

// validate requires the signature of the initial authority, so that
// nobody can hand out a program to an identity that did not agree to it.
func (h *deployHandler) validate(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*DeployMsg, error) {
	var msg DeployMsg
	if err := authlock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Authority, "authority"); err != nil {
		return nil, err
	}
	switch _, err := h.ctrl.Program(db, msg.Program); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "program %s", msg.Program)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}

type setAuthorityHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ authlock.Handler = (*setAuthorityHandler)(nil)

func (h *setAuthorityHandler) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &authlock.CheckResult{}, nil
}

func (h *setAuthorityHandler) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	msg, current, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetAuthority(db, msg.Program, msg.NewAuthority, current); err != nil {
		return nil, err
	}
	authlock.GetLogger(ctx).Info("program authority changed",
		"program", msg.Program,
		"authority", msg.NewAuthority)
	return &authlock.DeliverResult{}, nil
}

func (h *setAuthorityHandler) validate(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*SetAuthorityMsg, authlock.Address, error) {
	var msg SetAuthorityMsg
	if err := authlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	current, err := h.ctrl.CurrentAuthority(db, msg.Program)
	if err != nil {
		return nil, nil, err
	}
	if len(current) == 0 {
		return nil, nil, errors.Wrapf(ErrImmutable, "program %s", msg.Program)
	}
	if err := x.RequireAddress(ctx, h.auth, current, "authority"); err != nil {
		return nil, nil, err
	}
	return &msg, current, nil
}
