package sigs

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/x"
)

const maxBump = 1000

var _ authlock.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

func (m *BumpSequenceMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Increment == 0 || m.Increment > maxBump {
		errs = errors.Append(errs, errors.Field("Increment", errors.ErrMsg, "must be between 1 and %d", maxBump))
	}
	return errs
}

// RegisterRoutes registers the handler of BumpSequenceMsg.
func RegisterRoutes(r authlock.Registry, auth x.Authenticator) {
	r.Handle(&BumpSequenceMsg{}, &bumpHandler{auth: auth, bucket: NewBucket()})
}

// bumpHandler moves the sequence of the main signer forward, which voids
// every transaction signed with a skipped sequence.
type bumpHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h *bumpHandler) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	if _, _, err := h.load(ctx, db, tx); err != nil {
		return nil, err
	}
	return &authlock.CheckResult{}, nil
}

func (h *bumpHandler) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	user, msg, err := h.load(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// verifying the signature already advanced the sequence by one
	if msg.Increment == 1 {
		return &authlock.DeliverResult{}, nil
	}
	if err := user.advance(int64(msg.Increment) - 1); err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return &authlock.DeliverResult{}, nil
}

func (h *bumpHandler) load(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := authlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not signed")
	}
	var user UserData
	if err := h.bucket.One(db, signer.Address(), &user); err != nil {
		return nil, nil, errors.Wrap(err, "signer")
	}
	if user.Sequence > maxSequence-int64(msg.Increment) {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	return &user, &msg, nil
}
