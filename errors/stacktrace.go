package errors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found in err or any error it
// wraps.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	walk(err, func(cur error) bool {
		if s, ok := cur.(stackTracer); ok {
			st = s.StackTrace()
			return true
		}
		return false
	})
	return st
}

// frameFunc returns the function name and source position of a frame.
func frameFunc(f errors.Frame) (name, file string, line int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", "unknown", 0
	}
	file, line = fn.FileLine(pc)
	return fn.Name(), file, line
}

// innerFrames are this package's constructors and the runtime panic
// machinery. They never point at the code that created the error.
var innerFrames = []string{
	"github.com/iov-one/authlock/errors.Wrap",
	"github.com/iov-one/authlock/errors.withStack",
	"github.com/iov-one/authlock/errors.Field",
	"github.com/iov-one/authlock/errors.AppendField",
	"github.com/iov-one/authlock/errors.(*Error).New",
	"runtime.",
}

// outerFrames wrap every goroutine and test and say nothing about the
// error either.
var outerFrames = []string{
	"runtime.",
	"testing.",
}

func hasPrefix(f errors.Frame, prefixes []string) bool {
	name, _, _ := frameFunc(f)
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func trimStack(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && hasPrefix(st[0], innerFrames) {
		st = st[1:]
	}
	for len(st) > 1 && hasPrefix(st[len(st)-1], outerFrames) {
		st = st[:len(st)-1]
	}
	return st
}

// Format prints the message for %s. For %v the message is followed by
// the place the error was created, %+v prints the full stack trace first.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	stack := trimStack(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n%s", stack, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	if len(stack) > 0 {
		_, file, line := frameFunc(stack[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}
