package loader

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/store"
	"github.com/iov-one/authlock/weavetest"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	program := weavetest.RandomAddr(t)
	authority := weavetest.RandomAddr(t)
	hash := sha256.Sum256([]byte("code"))
	encHash := base64.StdEncoding.EncodeToString(hash[:])

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"programs loaded": {
			genesis: fmt.Sprintf(`{"loader": [{"program": %q, "authority": %q, "code_hash": %q}]}`,
				program, authority, encHash),
		},
		"no loader section": {
			genesis: `{}`,
		},
		"invalid code hash": {
			genesis: fmt.Sprintf(`{"loader": [{"program": %q, "authority": %q, "code_hash": "YWJj"}]}`,
				program, authority),
			wantErr: errors.ErrInput,
		},
		"duplicated program": {
			genesis: fmt.Sprintf(`{"loader": [
				{"program": %q, "authority": %q, "code_hash": %q},
				{"program": %q, "authority": %q, "code_hash": %q}
			]}`, program, authority, encHash, program, authority, encHash),
			wantErr: errors.ErrDuplicate,
		},
		"malformed": {
			genesis: `{"loader": {"program": 1}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts authlock.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			var ini Initializer
			err := ini.FromGenesis(opts, authlock.GenesisParams{Time: 1706745600}, db)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil || tc.genesis == `{}` {
				return
			}
			got, err := NewController(NewProgramDataBucket()).CurrentAuthority(db, program)
			assert.Nil(t, err)
			assert.Equal(t, authority, got)
		})
	}
}
