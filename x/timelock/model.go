package timelock

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/orm"
)

// TimelockID is the well-known identity of the timelock. Escrow addresses
// of the default controller are derived under it.
var TimelockID = authlock.ModuleAddress("timelock")

// EscrowAddress returns the address of the escrow for given target and
// effective time, derived under TimelockID, together with the bump used.
func EscrowAddress(target authlock.Address, effective authlock.UnixTime) (authlock.Address, uint8, error) {
	return deriveEscrowAddress(TimelockID, target, effective)
}

// deriveEscrowAddress derives the escrow address under given controller
// identity. Seeds are the target and the effective time encoded as 8 byte
// big-endian.
func deriveEscrowAddress(owner, target authlock.Address, effective authlock.UnixTime) (authlock.Address, uint8, error) {
	if err := target.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "target")
	}
	return authlock.DeriveAddress(owner, target, effective.Bytes())
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is well formed.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Target", e.Target.Validate())
	errs = errors.AppendField(errs, "Proposer", e.Proposer.Validate())
	errs = errors.AppendField(errs, "Program", e.Program.Validate())
	if e.EffectiveTime.IsZero() {
		errs = errors.Append(errs, errors.Field("EffectiveTime", errors.ErrEmpty, "required"))
	}
	switch e.State {
	case EscrowStatePending, EscrowStateExecuted:
	default:
		errs = errors.Append(errs, errors.Field("State", errors.ErrState, "invalid state %d", e.State))
	}
	if e.Bump > 255 {
		errs = errors.Append(errs, errors.Field("Bump", errors.ErrInput, "out of range"))
	}
	return errs
}

// EscrowBucket stores escrows under their derived addresses.
type EscrowBucket struct {
	orm.ModelBucket
}

// NewEscrowBucket returns a bucket for storing escrows.
func NewEscrowBucket() EscrowBucket {
	return EscrowBucket{
		ModelBucket: orm.NewModelBucket("escrow", &Escrow{}),
	}
}

// ByProgram returns all escrows that transfer the authority of given
// program, together with their addresses.
func (b EscrowBucket) ByProgram(db authlock.ReadOnlyKVStore, program authlock.Address) ([]authlock.Address, []*Escrow, error) {
	it, err := b.PrefixScan(db, nil, false)
	if err != nil {
		return nil, nil, errors.Wrap(err, "prefix scan")
	}
	defer it.Release()

	var (
		keys    []authlock.Address
		escrows []*Escrow
	)
	for {
		var e Escrow
		switch key, err := it.LoadNext(&e); {
		case err == nil:
			if e.Program.Equals(program) {
				keys = append(keys, key)
				escrows = append(escrows, &e)
			}
		case errors.ErrIteratorDone.Is(err):
			return keys, escrows, nil
		default:
			return nil, nil, errors.Wrap(err, "load next")
		}
	}
}

var _ orm.Model = (*Configuration)(nil)

// Validate ensures the configuration is well formed.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.MaxDelay < 0 {
		errs = errors.Append(errs, errors.Field("MaxDelay", errors.ErrInput, "must not be negative"))
	}
	return errs
}
