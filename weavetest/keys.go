package weavetest

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/crypto"
)

// NewKey returns a new random ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() authlock.Condition {
	return NewKey().PublicKey().Condition()
}
