package loader

import (
	"crypto/sha256"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

func init() {
	// Sanity check that messages implement the interface.
	var _ authlock.Msg = (*DeployMsg)(nil)
	var _ authlock.Msg = (*SetAuthorityMsg)(nil)
}

const (
	pathDeployMsg       = "loader/deploy"
	pathSetAuthorityMsg = "loader/set_authority"
)

// Path returns the routing path for this message.
func (DeployMsg) Path() string {
	return pathDeployMsg
}

// Validate ensures the message is well formed.
func (m *DeployMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Program", m.Program.Validate())
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	if len(m.CodeHash) != sha256.Size {
		errs = errors.Append(errs, errors.Field("CodeHash", errors.ErrMsg, "must be %d bytes", sha256.Size))
	}
	return errs
}

// Path returns the routing path for this message.
func (SetAuthorityMsg) Path() string {
	return pathSetAuthorityMsg
}

// Validate ensures the message is well formed. An empty NewAuthority is
// valid and makes the program immutable.
func (m *SetAuthorityMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Program", m.Program.Validate())
	if len(m.NewAuthority) != 0 {
		errs = errors.AppendField(errs, "NewAuthority", m.NewAuthority.Validate())
	}
	return errs
}
