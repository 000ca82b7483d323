package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/store"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestHandler(t *testing.T) {
	db := store.MemStore()
	h := &Handler{
		CheckResult: authlock.CheckResult{Log: "checked"},
		DeliverErr:  errors.ErrState,
		Write:       &authlock.Model{Key: []byte("k"), Value: []byte("v")},
	}

	res, err := h.Check(context.Background(), db, &Tx{})
	assert.Nil(t, err)
	assert.Equal(t, "checked", res.Log)

	_, err = h.Deliver(context.Background(), db, &Tx{})
	assert.IsErr(t, errors.ErrState, err)

	// the write happens even if the handler fails
	val, err := db.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), val)

	check, deliver := h.CallCount()
	assert.Equal(t, 1, check)
	assert.Equal(t, 1, deliver)
}

func TestDecorator(t *testing.T) {
	h := &Handler{}
	d := &Decorator{DeliverErr: errors.ErrUnauthorized}

	_, err := d.Check(context.Background(), nil, &Tx{}, h)
	assert.Nil(t, err)
	_, err = d.Deliver(context.Background(), nil, &Tx{}, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	check, deliver := d.CallCount()
	assert.Equal(t, [2]int{1, 1}, [2]int{check, deliver})
	check, deliver = h.CallCount()
	assert.Equal(t, [2]int{1, 0}, [2]int{check, deliver})
}

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	ctxAuth := &CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), a)

	cases := map[string]struct {
		auth interface {
			GetConditions(authlock.Context) []authlock.Condition
			HasAddress(authlock.Context, authlock.Address) bool
		}
		want []authlock.Condition
	}{
		"no signers": {
			auth: &Auth{},
		},
		"signer and signers": {
			auth: &Auth{Signer: a, Signers: []authlock.Condition{b}},
			want: []authlock.Condition{b, a},
		},
		"conditions in context": {
			auth: ctxAuth,
			want: []authlock.Condition{a},
		},
		"context of another key": {
			auth: &CtxAuth{Key: "other"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.auth.GetConditions(ctx)
			assert.Equal(t, len(tc.want), len(got))
			for _, cond := range tc.want {
				if !tc.auth.HasAddress(ctx, cond.Address()) {
					t.Errorf("%s not authenticated", cond)
				}
			}
			if tc.auth.HasAddress(ctx, c.Address()) {
				t.Error("unknown condition authenticated")
			}
		})
	}
}
