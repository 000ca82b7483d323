package app

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		content     string
		wantErr     *errors.Error
		wantChainID string
	}{
		"valid genesis": {
			content: `{
				"chain_id": "test-chain",
				"genesis_time": "2024-01-01T00:00:00Z",
				"app_state": {"conf": {}}
			}`,
			wantChainID: "test-chain",
		},
		"malformed json": {
			content: `{"chain_id": `,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "genesis.json")
			if err := ioutil.WriteFile(path, []byte(tc.content), 0600); err != nil {
				t.Fatalf("write genesis: %s", err)
			}
			gen, err := LoadGenesis(path)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantChainID, gen.ChainID)
			assert.Nil(t, gen.Validate())
			if _, ok := gen.AppState["conf"]; !ok {
				t.Fatal("app state not loaded")
			}
		})
	}

	_, err := LoadGenesis(filepath.Join(t.TempDir(), "missing.json"))
	assert.IsErr(t, errors.ErrInput, err)
}
