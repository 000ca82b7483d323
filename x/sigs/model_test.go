package sigs

import (
	"testing"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/store"
	"github.com/iov-one/authlock/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	pub := weavetest.NewKey().PublicKey()

	user, err := b.GetOrCreate(db, pub)
	require.NoError(t, err)
	require.NoError(t, user.Validate())
	assert.Equal(t, int64(0), user.Sequence)

	// a new account is not stored until it is put
	var stored UserData
	assert.True(t, errors.ErrNotFound.Is(b.One(db, pub.Address(), &stored)))

	require.NoError(t, user.consume(0))
	require.NoError(t, b.Put(db, pub.Address(), user))

	loaded, err := b.GetOrCreate(db, pub)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.Sequence)
	assert.Equal(t, pub.Ed25519, loaded.Pubkey.Ed25519)
}

func TestUserData(t *testing.T) {
	pub := weavetest.NewKey().PublicKey()
	meta := &authlock.Metadata{Schema: 1}

	cases := map[string]struct {
		user    UserData
		wantErr *errors.Error
	}{
		"new account": {
			user: UserData{Metadata: meta, Pubkey: pub},
		},
		"used account": {
			user: UserData{Metadata: meta, Pubkey: pub, Sequence: 12},
		},
		"no metadata": {
			user:    UserData{Pubkey: pub},
			wantErr: errors.ErrMetadata,
		},
		"negative sequence": {
			user:    UserData{Metadata: meta, Pubkey: pub, Sequence: -1},
			wantErr: ErrInvalidSequence,
		},
		"sequence without a key": {
			user:    UserData{Metadata: meta, Sequence: 3},
			wantErr: ErrInvalidSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.user.Validate()
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestSequence(t *testing.T) {
	u := UserData{Sequence: 4}
	assert.True(t, ErrInvalidSequence.Is(u.consume(3)))
	assert.True(t, ErrInvalidSequence.Is(u.consume(5)))
	assert.NoError(t, u.consume(4))
	assert.Equal(t, int64(5), u.Sequence)

	u.Sequence = maxSequence
	assert.True(t, errors.ErrOverflow.Is(u.consume(maxSequence)))
	assert.Equal(t, int64(maxSequence), u.Sequence)
	assert.True(t, errors.ErrOverflow.Is(u.advance(0)))
}
