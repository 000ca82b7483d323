package timelock

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/store"
	"github.com/iov-one/authlock/weavetest"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	owner := weavetest.RandomAddr(t)

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    Configuration
	}{
		"full configuration": {
			genesis: fmt.Sprintf(`{"conf": {"timelock": {
				"metadata": {"schema": 1},
				"owner": %q,
				"max_delay": "48h",
				"custody": true
			}}}`, owner),
			want: Configuration{
				Metadata: &authlock.Metadata{Schema: 1},
				Owner:    owner,
				MaxDelay: authlock.AsUnixDuration(48 * time.Hour),
				Custody:  true,
			},
		},
		"max delay in seconds": {
			genesis: fmt.Sprintf(`{"conf": {"timelock": {"metadata": {"schema": 1}, "owner": %q, "max_delay": 60}}}`, owner),
			want: Configuration{
				Metadata: &authlock.Metadata{Schema: 1},
				Owner:    owner,
				MaxDelay: 60,
			},
		},
		"no configuration": {
			genesis: `{}`,
			want:    Configuration{MaxDelay: DefaultMaxDelay},
		},
		"missing owner": {
			genesis: `{"conf": {"timelock": {"metadata": {"schema": 1}}}}`,
			wantErr: errors.ErrInput,
		},
		"negative max delay": {
			genesis: fmt.Sprintf(`{"conf": {"timelock": {"metadata": {"schema": 1}, "owner": %q, "max_delay": -1}}}`, owner),
			wantErr: errors.ErrInput,
		},
		"malformed": {
			genesis: `{"conf": {"timelock": {"owner": 12}}}`,
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
			err := ini.FromGenesis(opts, authlock.GenesisParams{Time: effective}, db)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}

			conf, err := NewController(TimelockID, NewEscrowBucket(), nil).Configuration(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.want.Owner, conf.Owner)
			assert.Equal(t, tc.want.MaxDelay, conf.MaxDelay)
			assert.Equal(t, tc.want.Custody, conf.Custody)
		})
	}
}
