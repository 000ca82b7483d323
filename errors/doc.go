/*
Package errors defines the error kinds of authlock and the helpers to wrap
them.

Every error returned to a client wraps one registered kind. Its code is the
result code of the transaction, so clients can tell errors apart without
parsing messages. Extensions register their own kinds with Register in a
code range of their own: x/sigs uses 120, x/timelock 1300 to 1399 and
x/loader 1400 to 1499.

Create errors with ErrXyz.New or Wrap at the place where they happen. The
first wrap records a stack trace and fmt prints it:

	%s  the message
	%v  the message and the file and line where the error was created
	%+v the full stack trace followed by the message
*/
package errors
