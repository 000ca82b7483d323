package sigs

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/crypto"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/orm"
)

// BucketName is the bucket of signer accounts.
const BucketName = "sigs"

// maxSequence is the greatest integer a JavaScript client represents
// exactly.
const maxSequence = 1<<53 - 1

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	switch {
	case u.Sequence < 0:
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "negative"))
	case u.Sequence > 0 && u.Pubkey == nil:
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "used without a public key"))
	}
	return errs
}

// consume accepts a signature made with seq if it is the next expected
// sequence and moves to the following one.
func (u *UserData) consume(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, seq)
	}
	return u.advance(1)
}

func (u *UserData) advance(n int64) error {
	if n <= 0 || u.Sequence > maxSequence-n {
		return errors.Wrapf(errors.ErrOverflow, "sequence %d plus %d", u.Sequence, n)
	}
	u.Sequence += n
	return nil
}

// Bucket stores UserData by the address of the public key.
type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// GetOrCreate loads the account of pubkey or returns a new one with
// sequence zero. A new account is not saved.
func (b Bucket) GetOrCreate(db authlock.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	err := b.One(db, pubkey.Address(), &user)
	switch {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Metadata: &authlock.Metadata{Schema: 1}, Pubkey: pubkey}, nil
	}
	return nil, err
}

// NextNonce returns the sequence the next signature of signer must use.
func NextNonce(db authlock.ReadOnlyKVStore, signer authlock.Address) (int64, error) {
	var user UserData
	err := NewBucket().One(db, signer, &user)
	switch {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	}
	return 0, errors.Wrap(err, "load signer")
}
