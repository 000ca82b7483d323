package orm

import (
	"github.com/iov-one/authlock"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	authlock.Persistent
	// Validate returns an error if the model must not be written to the
	// database.
	Validate() error
}
