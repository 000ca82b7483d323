package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/authlock"
)

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) authlock.Address {
	raw := make([]byte, authlock.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := authlock.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not a valid address: %s", err)
	}
	return a
}
