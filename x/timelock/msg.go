package timelock

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/gconf"
)

func init() {
	// Sanity check that messages implement the interface.
	var _ authlock.Msg = (*ProposeMsg)(nil)
	var _ authlock.Msg = (*TransferMsg)(nil)
	var _ gconf.UpdateMsg = (*UpdateConfigurationMsg)(nil)
}

const (
	pathProposeMsg             = "timelock/propose"
	pathTransferMsg            = "timelock/transfer"
	pathUpdateConfigurationMsg = "gconf/timelock"
)

// Path returns the routing path for this message.
func (ProposeMsg) Path() string {
	return pathProposeMsg
}

// Validate ensures the message is well formed. Time constraints depend on
// the block time and are checked by the handler.
func (m *ProposeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	errs = errors.AppendField(errs, "Target", m.Target.Validate())
	errs = errors.AppendField(errs, "Program", m.Program.Validate())
	errs = errors.AppendField(errs, "ProgramData", optionalAddress(m.ProgramData))
	errs = errors.AppendField(errs, "Escrow", optionalAddress(m.Escrow))
	return errs
}

// Path returns the routing path for this message.
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate ensures the message is well formed.
func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Target", m.Target.Validate())
	errs = errors.AppendField(errs, "Program", m.Program.Validate())
	errs = errors.AppendField(errs, "ProgramData", optionalAddress(m.ProgramData))
	errs = errors.AppendField(errs, "Escrow", optionalAddress(m.Escrow))
	errs = errors.AppendField(errs, "Loader", optionalAddress(m.Loader))
	return errs
}

// Path returns the routing path for this message.
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate ensures the message is well formed. Zero fields of the patch are
// not applied and are not validated.
func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.Append(errs, errors.Field("Patch", errors.ErrEmpty, "required"))
	}
	errs = errors.AppendField(errs, "Patch.Owner", optionalAddress(m.Patch.Owner))
	if m.Patch.MaxDelay < 0 {
		errs = errors.Append(errs, errors.Field("Patch.MaxDelay", errors.ErrMsg, "must not be negative"))
	}
	return errs
}

// ConfigPatch returns the patch to apply to the stored configuration.
func (m *UpdateConfigurationMsg) ConfigPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

func optionalAddress(a authlock.Address) error {
	if len(a) == 0 {
		return nil
	}
	return a.Validate()
}
