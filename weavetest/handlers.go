package weavetest

import "github.com/iov-one/authlock"

// Handler is a mock implementation of the authlock.Handler interface.
//
// It returns the configured result or error and counts every call. Set
// Write to a key/value pair to have the handler write it to the store
// before returning, which allows testing of the rollback behaviour.
type Handler struct {
	checkCall   int
	CheckResult authlock.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult authlock.DeliverResult
	DeliverErr    error

	// Write if set is stored on every Deliver call, regardless of the
	// returned error.
	Write *authlock.Model
}

var _ authlock.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx authlock.Context, db authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	h.deliverCall++
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CallCount returns the number of Check and Deliver calls.
func (h *Handler) CallCount() (check, deliver int) {
	return h.checkCall, h.deliverCall
}
