package loader

import "github.com/iov-one/authlock/errors"

// loader takes 1400-1500
var (
	ErrNotCurrentAuthority = errors.Register(1401, "not the current authority")
	ErrImmutable           = errors.Register(1402, "program is immutable")
)
