package authlock

import (
	"crypto/sha256"
	"strings"

	"filippo.io/edwards25519"
	lru "github.com/hashicorp/golang-lru"
	"github.com/iov-one/authlock/errors"
)

const (
	// DerivedAddressMarker is appended to every derivation input so that a
	// derived address can never be confused with a digest of other data.
	DerivedAddressMarker = "ProgramDerivedAddress"

	// MaxSeeds is the maximum number of seeds accepted by a derivation.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	derivationCacheSize = 1024
)

// derivations holds recent DeriveAddress results. The same program data and
// escrow addresses are derived by check, deliver and the queries.
var derivations *lru.ARCCache

func init() {
	c, err := lru.NewARC(derivationCacheSize)
	if err != nil {
		panic(err)
	}
	derivations = c
}

type derivation struct {
	addr Address
	bump uint8
}

// CreateDerivedAddress computes the address for the given owner, bump and
// seeds. The result is
//
//	sha256(seed_0 || ... || seed_n || bump || owner || DerivedAddressMarker)
//
// A digest that is a valid ed25519 point could have a private key and is
// rejected with ErrInput. Use DeriveAddress to find a bump that produces a
// valid address.
func CreateDerivedAddress(owner Address, bump uint8, seeds ...[]byte) (Address, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	addr := derivationDigest(owner, bump, seeds)
	if onCurve(addr) {
		return nil, errors.Wrapf(errors.ErrInput, "bump %d gives an address on the ed25519 curve", bump)
	}
	return addr, nil
}

// DeriveAddress returns the derived address for given owner and seeds,
// together with the bump that was used to compute it. Bumps are tried from
// 255 down to 0 and the first one producing an address off the ed25519
// curve wins, so the result is deterministic for the same input.
//
// The function is pure. ErrDerivationExhausted is returned if no bump value
// produces a valid address.
func DeriveAddress(owner Address, seeds ...[]byte) (Address, uint8, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	if err := owner.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "owner")
	}
	key := derivationKey(owner, seeds)
	if v, ok := derivations.Get(key); ok {
		d := v.(derivation)
		return append(Address(nil), d.addr...), d.bump, nil
	}
	for bump := 255; bump >= 0; bump-- {
		addr := derivationDigest(owner, uint8(bump), seeds)
		if !onCurve(addr) {
			derivations.Add(key, derivation{addr: addr, bump: uint8(bump)})
			return append(Address(nil), addr...), uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrapf(errors.ErrDerivationExhausted, "owner %s", owner)
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(errors.ErrInput, "%d seeds, max %d", len(seeds), MaxSeeds)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(errors.ErrInput, "seed %d is %d bytes long, max %d", i, len(s), MaxSeedLength)
		}
	}
	return nil
}

// derivationKey encodes the derivation input without ambiguity. Seeds are
// length prefixed, their length always fits a byte.
func derivationKey(owner Address, seeds [][]byte) string {
	var b strings.Builder
	b.Write(owner)
	for _, s := range seeds {
		b.WriteByte(byte(len(s)))
		b.Write(s)
	}
	return b.String()
}

func derivationDigest(owner Address, bump uint8, seeds [][]byte) Address {
	h := sha256.New()
	for _, s := range seeds {
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte{bump})
	_, _ = h.Write(owner)
	_, _ = h.Write([]byte(DerivedAddressMarker))
	return h.Sum(nil)
}

// onCurve returns true if given bytes decode as an ed25519 point.
func onCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// ModuleAddress returns the well-known identity of a module. It is a plain
// digest of the name and is meant to be used as the owner of derived
// addresses.
func ModuleAddress(name string) Address {
	return NewAddress([]byte(DerivedAddressMarker + "/" + name))
}
