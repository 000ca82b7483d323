package loader

import (
	"crypto/sha256"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/orm"
)

// LoaderID is the identity of the loader. All program data addresses are
// derived under it.
var LoaderID = authlock.ModuleAddress("loader")

// ProgramDataAddress returns the address of the metadata record of given
// program together with the bump used to derive it.
func ProgramDataAddress(program authlock.Address) (authlock.Address, uint8, error) {
	if err := program.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "program")
	}
	return authlock.DeriveAddress(LoaderID, program)
}

var _ orm.Model = (*ProgramData)(nil)

// Validate ensures the record is well formed.
func (p *ProgramData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	errs = errors.AppendField(errs, "Program", p.Program.Validate())
	if len(p.Authority) != 0 {
		errs = errors.AppendField(errs, "Authority", p.Authority.Validate())
	}
	if len(p.CodeHash) != sha256.Size {
		errs = errors.Append(errs, errors.Field("CodeHash", errors.ErrInput, "must be %d bytes", sha256.Size))
	}
	if p.Bump > 255 {
		errs = errors.Append(errs, errors.Field("Bump", errors.ErrInput, "out of range"))
	}
	return errs
}

// IsImmutable returns true if the program cannot be upgraded anymore.
func (p *ProgramData) IsImmutable() bool {
	return len(p.Authority) == 0
}

// ProgramDataBucket stores ProgramData records under their derived
// addresses.
type ProgramDataBucket struct {
	orm.ModelBucket
}

// NewProgramDataBucket returns a bucket for storing ProgramData.
func NewProgramDataBucket() ProgramDataBucket {
	return ProgramDataBucket{
		ModelBucket: orm.NewModelBucket("progdata", &ProgramData{}),
	}
}
