package app

import (
	"fmt"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]authlock.Handler
}

var _ authlock.Registry = (*Router)(nil)
var _ authlock.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]authlock.Handler, 10),
	}
}

// Handle adds a new Handler for the path of given message. This method
// panics if a handler for given path is already registered or the path is
// not a valid one.
func (r *Router) Handle(m authlock.Msg, h authlock.Handler) {
	path := m.Path()
	if !authlock.IsValidPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no handler is
// registered, a handler that always returns ErrNotFound is used.
func (r *Router) handler(path string) authlock.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx authlock.Context, store authlock.KVStore, tx authlock.Tx) (*authlock.CheckResult, error) {
	path, err := msgPath(tx)
	if err != nil {
		return nil, err
	}
	return r.handler(path).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx authlock.Context, store authlock.KVStore, tx authlock.Tx) (*authlock.DeliverResult, error) {
	path, err := msgPath(tx)
	if err != nil {
		return nil, err
	}
	return r.handler(path).Deliver(ctx, store, tx)
}

func msgPath(tx authlock.Tx) (string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return "", errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return "", errors.Wrap(errors.ErrMsg, "no message")
	}
	return msg.Path(), nil
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(authlock.Context, authlock.KVStore, authlock.Tx) (*authlock.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(authlock.Context, authlock.KVStore, authlock.Tx) (*authlock.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
