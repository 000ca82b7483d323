package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/store"
	"github.com/iov-one/authlock/weavetest"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestSaveLoad(t *testing.T) {
	owner := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
	}{
		"full configuration": {
			Conf: &myconfig{Metadata: &authlock.Metadata{Schema: 1}, Owner: owner, Num: 852151421, Str: "foobar"},
		},
		"zero values": {
			Conf: &myconfig{Metadata: &authlock.Metadata{Schema: 1}, Owner: owner},
		},
		"invalid address cannot be saved": {
			Conf:        &myconfig{Metadata: &authlock.Metadata{Schema: 1}, Owner: authlock.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"missing metadata cannot be saved": {
			Conf:        &myconfig{Owner: owner},
			WantSaveErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got myconfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, tc.Conf.Owner, got.Owner)
			assert.Equal(t, tc.Conf.Num, got.Num)
			assert.Equal(t, tc.Conf.Str, got.Str)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var c myconfig
	if err := Load(db, "mypkg", &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestInitConfig(t *testing.T) {
	owner := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		WantNum int64
	}{
		"configuration present": {
			Genesis: `{"conf": {"mypkg": {"metadata": {"schema": 1}, "owner": "` + owner.String() + `", "num": 42}}}`,
			WantNum: 42,
		},
		"configuration of other package": {
			Genesis: `{"conf": {"otherpkg": {}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"metadata": {"schema": 1}, "num": 42}}}`,
			WantErr: errors.ErrInput,
		},
		"malformed configuration": {
			Genesis: `{"conf": {"mypkg": {"num": "forty two"}}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts authlock.Options
			if err := json.Unmarshal([]byte(tc.Genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			var c myconfig
			if err := InitConfig(db, opts, "mypkg", &c); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			var got myconfig
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load: %s", err)
			}
			assert.Equal(t, tc.WantNum, got.Num)
			assert.Equal(t, owner, got.Owner)
		})
	}
}
