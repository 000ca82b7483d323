package timelock

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/gconf"
	"github.com/iov-one/authlock/x"
)

// RegisterRoutes registers handlers for all timelock messages.
func RegisterRoutes(r authlock.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&ProposeMsg{}, &proposeHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferMsg{}, &transferHandler{ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateHandler(configPkg, auth, func() gconf.OwnedConfig {
		return &Configuration{}
	}))
}

// ProgramQueryMod lists all escrows of the program given as query data.
const ProgramQueryMod = "program"

// RegisterQuery registers escrows under /escrows. Escrows are keyed by
// their derived address. Besides the bucket mods, /escrows?program
// returns every escrow of a program.
func RegisterQuery(qr authlock.QueryRouter) {
	b := NewEscrowBucket()
	raw := authlock.NewQueryRouter()
	b.Register("escrows", raw)
	qr.Register("/escrows", escrowQuery{bucket: b, raw: raw.Handler("/escrows")})
}

type escrowQuery struct {
	bucket EscrowBucket
	raw    authlock.QueryHandler
}

var _ authlock.QueryHandler = escrowQuery{}

// Query keys results of the program mod by escrow address.
func (q escrowQuery) Query(db authlock.ReadOnlyKVStore, mod string, data []byte) ([]authlock.Model, error) {
	if mod != ProgramQueryMod {
		return q.raw.Query(db, mod, data)
	}
	program := authlock.Address(data)
	if err := program.Validate(); err != nil {
		return nil, errors.Wrap(err, "program")
	}
	keys, escrows, err := q.bucket.ByProgram(db, program)
	if err != nil {
		return nil, err
	}
	res := make([]authlock.Model, 0, len(keys))
	for i, e := range escrows {
		raw, err := authlock.Marshal(e)
		if err != nil {
			return nil, errors.Wrap(err, "marshal escrow")
		}
		res = append(res, authlock.Pair(keys[i], raw))
	}
	return res, nil
}

type proposeHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ authlock.Handler = (*proposeHandler)(nil)

// Check runs the whole proposal on the given store. The store passed to
// Check is always discarded.
func (h *proposeHandler) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	if _, _, err := h.propose(ctx, db, tx); err != nil {
		return nil, err
	}
	return &authlock.CheckResult{}, nil
}

func (h *proposeHandler) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	addr, escrow, err := h.propose(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	authlock.GetLogger(ctx).Info("authority transfer proposed",
		"escrow", addr,
		"program", escrow.Program,
		"target", escrow.Target,
		"effective", escrow.EffectiveTime,
		"custody", escrow.Custody)
	return &authlock.DeliverResult{Data: addr}, nil
}

func (h *proposeHandler) propose(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (authlock.Address, *Escrow, error) {
	var msg ProposeMsg
	if err := authlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Authority, "authority"); err != nil {
		return nil, nil, err
	}
	return h.ctrl.Propose(ctx, db, Proposal{
		Authority:     msg.Authority,
		Target:        msg.Target,
		Program:       msg.Program,
		EffectiveTime: msg.EffectiveTime,
		ProgramData:   msg.ProgramData,
		Escrow:        msg.Escrow,
	})
}

// transferHandler requires no signature. The escrow itself authorizes the
// change.
type transferHandler struct {
	ctrl *Controller
}

var _ authlock.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	if _, _, err := h.transfer(ctx, db, tx); err != nil {
		return nil, err
	}
	return &authlock.CheckResult{}, nil
}

func (h *transferHandler) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	addr, escrow, err := h.transfer(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	authlock.GetLogger(ctx).Info("authority transferred",
		"escrow", addr,
		"program", escrow.Program,
		"target", escrow.Target)
	return &authlock.DeliverResult{Data: addr}, nil
}

func (h *transferHandler) transfer(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (authlock.Address, *Escrow, error) {
	var msg TransferMsg
	if err := authlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	return h.ctrl.Transfer(ctx, db, Execution{
		Target:        msg.Target,
		Program:       msg.Program,
		EffectiveTime: msg.EffectiveTime,
		ProgramData:   msg.ProgramData,
		Escrow:        msg.Escrow,
		Loader:        msg.Loader,
	})
}
