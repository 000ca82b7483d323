package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Wrap adds a description to err. The innermost wrap records a stack
// trace. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: description, parent: withStack(err)}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

func withStack(err error) error {
	if stackTrace(err) != nil {
		return err
	}
	return errors.WithStack(err)
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Field wraps err as a problem with the named field. Nested fields use a
// dotted path, for example Escrow.Target, and list elements their index,
// for example Programs.2. A nil err returns nil.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNil(err) {
		return nil
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: name, desc: description, parent: withStack(err)}
}

// AppendField adds a field error for name to errs. Nothing is added when
// err is nil.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error { return e.parent }

// FieldErrors returns every error in err that was created for the named
// field.
func FieldErrors(err error, name string) []error {
	var res []error
	walk(err, func(cur error) bool {
		if f, ok := cur.(*fieldError); ok && f.field == name {
			res = append(res, cur)
		}
		return false
	})
	return res
}

// Append joins errors into one. Nil errors are skipped and joined errors
// are flattened. It returns nil when nothing is left and the error itself
// when only one is left.
func Append(errs ...error) error {
	var all multiErr
	for _, err := range errs {
		switch {
		case isNil(err):
		case isMulti(err):
			all = append(all, err.(unpacker).Unpack()...)
		default:
			all = append(all, err)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

func isMulti(err error) bool {
	_, ok := err.(unpacker)
	return ok
}

type multiErr []error

func (e multiErr) Unpack() []error { return e }

func (e multiErr) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:", len(e))
	for _, err := range e {
		fmt.Fprintf(&b, "\n\t* %s", err)
	}
	b.WriteString("\n")
	return b.String()
}

// Code of a collection is the code of its first error.
func (e multiErr) Code() uint32 {
	return errCode(e[0])
}
