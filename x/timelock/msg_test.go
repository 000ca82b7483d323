package timelock

import (
	"testing"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/weavetest"
	"github.com/iov-one/authlock/weavetest/assert"
)

func TestMsgValidate(t *testing.T) {
	addr := weavetest.RandomAddr(t)
	short := authlock.Address("short")
	meta := &authlock.Metadata{Schema: 1}

	cases := map[string]struct {
		msg     authlock.Msg
		wantErr *errors.Error
	}{
		"valid propose": {
			msg: &ProposeMsg{Metadata: meta, Authority: addr, Target: addr, Program: addr, EffectiveTime: effective},
		},
		"propose with explicit accounts": {
			msg: &ProposeMsg{Metadata: meta, Authority: addr, Target: addr, Program: addr, EffectiveTime: effective, ProgramData: addr, Escrow: addr},
		},
		"propose without metadata": {
			msg:     &ProposeMsg{Authority: addr, Target: addr, Program: addr, EffectiveTime: effective},
			wantErr: errors.ErrMetadata,
		},
		"propose without authority": {
			msg:     &ProposeMsg{Metadata: meta, Target: addr, Program: addr, EffectiveTime: effective},
			wantErr: errors.ErrInput,
		},
		"propose with malformed escrow": {
			msg:     &ProposeMsg{Metadata: meta, Authority: addr, Target: addr, Program: addr, EffectiveTime: effective, Escrow: short},
			wantErr: errors.ErrInput,
		},
		"valid transfer": {
			msg: &TransferMsg{Metadata: meta, Target: addr, Program: addr, EffectiveTime: effective},
		},
		"transfer with malformed loader": {
			msg:     &TransferMsg{Metadata: meta, Target: addr, Program: addr, EffectiveTime: effective, Loader: short},
			wantErr: errors.ErrInput,
		},
		"transfer without program": {
			msg:     &TransferMsg{Metadata: meta, Target: addr, EffectiveTime: effective},
			wantErr: errors.ErrInput,
		},
		"valid configuration patch": {
			msg: &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{Custody: true}},
		},
		"configuration patch missing": {
			msg:     &UpdateConfigurationMsg{Metadata: meta},
			wantErr: errors.ErrEmpty,
		},
		"configuration patch with negative delay": {
			msg:     &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{MaxDelay: -5}},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}

func TestMsgPath(t *testing.T) {
	assert.Equal(t, "timelock/propose", (&ProposeMsg{}).Path())
	assert.Equal(t, "timelock/transfer", (&TransferMsg{}).Path())
	assert.Equal(t, "gconf/timelock", (&UpdateConfigurationMsg{}).Path())
}
