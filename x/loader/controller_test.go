package loader

import (
	"crypto/sha256"
	"testing"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/store"
	"github.com/iov-one/authlock/weavetest"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestControllerDeploy(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewProgramDataBucket())
	program := weavetest.RandomAddr(t)
	authority := weavetest.RandomAddr(t)
	hash := sha256.Sum256([]byte("code"))

	data, err := ctrl.Deploy(db, program, authority, hash[:], 1706745600)
	assert.Nil(t, err)
	assert.Equal(t, program, data.Program)

	got, err := ctrl.Program(db, program)
	assert.Nil(t, err)
	assert.Equal(t, authority, got.Authority)
	assert.Equal(t, authlock.UnixTime(1706745600), got.DeployedAt)

	_, bump, err := ProgramDataAddress(program)
	assert.Nil(t, err)
	assert.Equal(t, uint32(bump), got.Bump)

	_, err = ctrl.Deploy(db, program, authority, hash[:], 1706745600)
	assert.IsErr(t, errors.ErrDuplicate, err)

	_, err = ctrl.Program(db, weavetest.RandomAddr(t))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestControllerSetAuthority(t *testing.T) {
	hash := sha256.Sum256([]byte("code"))
	authority := weavetest.RandomAddr(t)
	newAuthority := weavetest.RandomAddr(t)

	cases := map[string]struct {
		authority     authlock.Address
		newAuthority  authlock.Address
		acting        authlock.Address
		missing       bool
		wantErr       *errors.Error
		wantAuthority authlock.Address
	}{
		"authority changed by the current authority": {
			authority:     authority,
			newAuthority:  newAuthority,
			acting:        authority,
			wantAuthority: newAuthority,
		},
		"program made immutable": {
			authority:     authority,
			newAuthority:  nil,
			acting:        authority,
			wantAuthority: nil,
		},
		"acting is not the current authority": {
			authority:     authority,
			newAuthority:  newAuthority,
			acting:        newAuthority,
			wantErr:       ErrNotCurrentAuthority,
			wantAuthority: authority,
		},
		"immutable program": {
			authority:    nil,
			newAuthority: newAuthority,
			acting:       authority,
			wantErr:      ErrImmutable,
		},
		"invalid new authority": {
			authority:     authority,
			newAuthority:  authlock.Address("short"),
			acting:        authority,
			wantErr:       errors.ErrInput,
			wantAuthority: authority,
		},
		"program not deployed": {
			missing:      true,
			newAuthority: newAuthority,
			acting:       authority,
			wantErr:      errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewProgramDataBucket())
			program := weavetest.RandomAddr(t)
			if !tc.missing {
				if _, err := ctrl.Deploy(db, program, tc.authority, hash[:], 1); err != nil {
					t.Fatalf("cannot deploy: %s", err)
				}
			}

			err := ctrl.SetAuthority(db, program, tc.newAuthority, tc.acting)
			assert.IsErr(t, tc.wantErr, err)
			if tc.missing {
				return
			}

			got, err := ctrl.CurrentAuthority(db, program)
			assert.Nil(t, err)
			if !tc.wantAuthority.Equals(got) {
				t.Fatalf("want authority %s, got %s", tc.wantAuthority, got)
			}
		})
	}
}
