/*
Package assert provides the few assertions used by the tests of this module.
Every helper stops the test on failure.
*/
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/authlock/errors"
)

// Tester is the subset of testing.TB needed by the assertions.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if given value is not nil. Typed nil values, for
// example a nil *Error stored in an error interface, are nil as well.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors that carry one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if two values are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test if calling fn does not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test unless got is of the kind described by want. A nil
// want matches a nil error only.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError fails the test unless err carries exactly one error for the
// given field and that error is of the wanted kind. A nil want expects no
// error for the field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	for i, e := range errs {
		t.Logf("%s error %d: %q", fieldName, i+1, e)
	}
	switch {
	case want == nil && len(errs) == 0:
	case want == nil:
		t.Fatalf("want no %s error, got %d", fieldName, len(errs))
	case len(errs) != 1:
		t.Fatalf("want one %s error, got %d", fieldName, len(errs))
	case !want.Is(errs[0]):
		t.Fatalf("unexpected %s error: %q", fieldName, errs[0])
	}
}
