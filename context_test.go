package authlock

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestHeight(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 7)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)
	assert.Panics(t, func() { WithHeight(ctx, 8) })
}

func TestChainIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "bad") })

	ctx = WithChainID(ctx, "authlock-test")
	assert.Equal(t, "authlock-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "authlock-test") })
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"short":                         false,
		"devnet":                        true,
		"main-NET_01":                   true,
		"semi;colon":                    false,
		"exactly-twenty-chars":          true,
		"longer-than-twenty-characters": false,
	}
	for chainID, want := range cases {
		assert.Equal(t, want, IsValidChainID(chainID), chainID)
	}
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	var buf bytes.Buffer
	ctx = WithLogger(ctx, log.NewTMLogger(&buf))
	ctx = WithLogInfo(ctx, "program", "p1")
	GetLogger(ctx).Info("deployed")
	assert.Contains(t, buf.String(), "program=p1")
	assert.Contains(t, buf.String(), "deployed")
}

func TestBlockTime(t *testing.T) {
	bg := context.Background()

	_, err := BlockTime(bg)
	assert.Error(t, err)
	_, err = BlockTime(WithBlockTime(bg, time.Time{}))
	assert.Error(t, err)

	local := time.Date(2024, 2, 1, 2, 0, 0, 0, time.FixedZone("CET", 3600))
	ctx := WithBlockTime(bg, local)
	got, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(local))
	assert.Equal(t, time.UTC, got.Location())
}
