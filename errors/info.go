package errors

import (
	"fmt"
)

// SuccessCode is reported when there is no error.
const SuccessCode = 0

const internalLog = "internal error"

// Info returns the result code and log message of err as shown to a
// client. Errors without a registered kind get code 1 and, unless debug
// is set, a generic message that hides their details. In debug mode the
// log carries the stack trace.
func Info(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessCode, ""
	}
	code := errCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode:
		return code, internalLog
	default:
		return code, err.Error()
	}
}

type coder interface {
	Code() uint32
}

// errCode returns the code of the first error in the cause chain that
// provides one.
func errCode(err error) uint32 {
	if isNil(err) {
		return SuccessCode
	}
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalCode
}
