package errors

import (
	"fmt"
	"reflect"
)

// Root errors shared by all extensions. Extensions register their own
// kinds in their own code range.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	ErrMsg          = Register(4, "invalid message")
	ErrModel        = Register(5, "invalid model")
	ErrDuplicate    = Register(6, "duplicate")
	ErrHuman        = Register(7, "coding error")
	ErrEmpty        = Register(9, "value is empty")
	ErrState        = Register(10, "invalid state")
	ErrType         = Register(11, "invalid type")
	ErrInput        = Register(14, "invalid input")
	ErrOverflow     = Register(16, "value overflow")
	ErrDatabase     = Register(18, "database")
	ErrMetadata     = Register(19, "invalid metadata")
	ErrIteratorDone = Register(20, "iterator done")

	// ErrDerivationExhausted is returned when no bump seed yields a valid
	// derived address.
	ErrDerivationExhausted = Register(17, "no valid derived address")

	// ErrPanic wraps a recovered panic.
	ErrPanic = Register(111222, "panic")
)

// internalCode is reported for every error that carries no registered
// kind. It can never be registered.
const internalCode uint32 = 1

var registry = map[uint32]*Error{
	internalCode: nil,
}

// Register declares a new root error. It panics when the code is already
// taken, so call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		if prev == nil {
			panic(fmt.Sprintf("error code %d is reserved", code))
		}
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error kind. Every error returned to a client should wrap
// exactly one kind so that its code can be reported.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// Code is the result code reported to clients.
func (e Error) Code() uint32 { return e.code }

// New wraps the kind with a description, same as Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is returns true if err is of this kind or wraps it. For a collection of
// errors it is enough that one of them matches. A nil kind matches only a
// nil error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	return walk(err, func(cur error) bool { return cur == e })
}

// walk calls visit for err and every error it wraps until visit returns
// true. Collections are searched depth first.
func walk(err error, visit func(error) bool) bool {
	for err != nil {
		if visit(err) {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, inner := range u.Unpack() {
				if walk(inner, visit) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// isNil also catches a typed nil pointer hidden in the error interface.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type unpacker interface {
	Unpack() []error
}
