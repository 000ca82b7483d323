package timelock

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/gconf"
	"github.com/iov-one/authlock/x/loader"
)

// configPkg names the timelock configuration in the gconf store.
const configPkg = "timelock"

// Controller implements the timelock state machine.
type Controller struct {
	id     authlock.Address
	bucket EscrowBucket
	bridge AuthorityBridge
}

// NewController returns a controller that derives escrow addresses under
// given identity. Controllers with different identities never share an
// escrow address.
func NewController(id authlock.Address, bucket EscrowBucket, bridge AuthorityBridge) *Controller {
	return &Controller{
		id:     id,
		bucket: bucket,
		bridge: bridge,
	}
}

// ID returns the identity of this controller.
func (c *Controller) ID() authlock.Address {
	return c.id
}

// EscrowAddress returns the escrow address for given target and effective
// time.
func (c *Controller) EscrowAddress(target authlock.Address, effective authlock.UnixTime) (authlock.Address, uint8, error) {
	return deriveEscrowAddress(c.id, target, effective)
}

// DefaultMaxDelay bounds the effective time of proposals while no
// configuration is stored.
const DefaultMaxDelay = authlock.UnixDuration(365 * 24 * 60 * 60)

// Configuration returns the current configuration. Without a stored one,
// proposals are limited to DefaultMaxDelay and custody is off.
func (c *Controller) Configuration(db authlock.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{MaxDelay: DefaultMaxDelay}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// Proposal describes a transfer to be scheduled. Authority must be an
// authenticated identity.
type Proposal struct {
	Authority     authlock.Address
	Target        authlock.Address
	Program       authlock.Address
	EffectiveTime authlock.UnixTime
	// ProgramData and Escrow are optional. When given, they must be equal
	// to the derived addresses.
	ProgramData authlock.Address
	Escrow      authlock.Address
}

// Propose stores a pending escrow for given proposal and returns its
// address.
func (c *Controller) Propose(ctx authlock.Context, db authlock.KVStore, p Proposal) (authlock.Address, *Escrow, error) {
	escrowAddr, bump, err := c.EscrowAddress(p.Target, p.EffectiveTime)
	if err != nil {
		return nil, nil, errors.Wrap(err, "escrow address")
	}
	if err := requireDerived(p.Program, p.ProgramData, escrowAddr, p.Escrow); err != nil {
		return nil, nil, err
	}

	current, err := c.bridge.CurrentAuthority(db, p.Program)
	if err != nil {
		return nil, nil, errors.Wrap(err, "current authority")
	}
	if len(current) == 0 || !current.Equals(p.Authority) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not the authority of %s", p.Authority, p.Program)
	}

	now, err := authlock.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if p.EffectiveTime <= authlock.AsUnixTime(now) {
		return nil, nil, errors.Wrapf(ErrTimestampNotInFuture, "%s is not after %s", p.EffectiveTime, authlock.AsUnixTime(now))
	}
	conf, err := c.Configuration(db)
	if err != nil {
		return nil, nil, err
	}
	if conf.MaxDelay > 0 {
		if deadline := authlock.AsUnixTime(now).Add(conf.MaxDelay.Duration()); p.EffectiveTime > deadline {
			return nil, nil, errors.Wrapf(ErrTimestampTooLate, "%s is after %s", p.EffectiveTime, deadline)
		}
	}

	switch err := c.bucket.Has(db, escrowAddr); {
	case err == nil:
		return nil, nil, errors.Wrapf(ErrEscrowExists, "escrow %s", escrowAddr)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, errors.Wrap(err, "escrow lookup")
	}

	escrow := &Escrow{
		Metadata:      &authlock.Metadata{Schema: 1},
		Target:        p.Target,
		EffectiveTime: p.EffectiveTime,
		Proposer:      p.Authority,
		Program:       p.Program,
		State:         EscrowStatePending,
		Bump:          uint32(bump),
		Custody:       conf.Custody,
	}
	if err := c.bucket.Put(db, escrowAddr, escrow); err != nil {
		return nil, nil, errors.Wrap(err, "save escrow")
	}
	if escrow.Custody {
		if err := c.bridge.SetAuthority(db, p.Program, escrowAddr, p.Authority); err != nil {
			return nil, nil, errors.Wrap(err, "move authority to escrow")
		}
	}
	return escrowAddr, escrow, nil
}

// Execution describes a transfer to be executed.
type Execution struct {
	Target        authlock.Address
	Program       authlock.Address
	EffectiveTime authlock.UnixTime
	// ProgramData, Escrow and Loader are optional. When given, they must
	// be equal to the derived addresses and the loader identity.
	ProgramData authlock.Address
	Escrow      authlock.Address
	Loader      authlock.Address
}

// Transfer executes a pending escrow once its effective time has passed.
// The program authority is changed to the target and the escrow is
// removed.
func (c *Controller) Transfer(ctx authlock.Context, db authlock.KVStore, e Execution) (authlock.Address, *Escrow, error) {
	escrowAddr, _, err := c.EscrowAddress(e.Target, e.EffectiveTime)
	if err != nil {
		return nil, nil, errors.Wrap(err, "escrow address")
	}
	if err := requireDerived(e.Program, e.ProgramData, escrowAddr, e.Escrow); err != nil {
		return nil, nil, err
	}
	if len(e.Loader) != 0 && !e.Loader.Equals(loader.LoaderID) {
		return nil, nil, errors.Wrapf(errors.ErrInput, "loader %s is not %s", e.Loader, loader.LoaderID)
	}

	escrow, err := c.load(db, escrowAddr)
	if err != nil {
		return nil, nil, err
	}
	if escrow.State != EscrowStatePending ||
		!escrow.Target.Equals(e.Target) ||
		escrow.EffectiveTime != e.EffectiveTime ||
		!escrow.Program.Equals(e.Program) {
		return nil, nil, errors.Wrapf(ErrEscrowNotFound, "no pending escrow for program %s at %s", e.Program, escrowAddr)
	}

	now, err := authlock.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if authlock.AsUnixTime(now) < escrow.EffectiveTime {
		return nil, nil, errors.Wrapf(ErrTimelockNotExpired, "effective at %s", escrow.EffectiveTime)
	}

	acting := escrow.Proposer
	if escrow.Custody {
		acting = escrowAddr
	}
	current, err := c.bridge.CurrentAuthority(db, escrow.Program)
	if err != nil {
		return nil, nil, errors.Wrap(err, "current authority")
	}
	if !current.Equals(acting) {
		return nil, nil, errors.Wrapf(ErrAuthorityChanged, "authority is %s, expected %s", current, acting)
	}

	if err := c.bridge.SetAuthority(db, escrow.Program, escrow.Target, acting); err != nil {
		return nil, nil, err
	}

	escrow.State = EscrowStateExecuted
	if err := c.bucket.Put(db, escrowAddr, escrow); err != nil {
		return nil, nil, errors.Wrap(err, "save escrow")
	}
	if err := c.bucket.Delete(db, escrowAddr); err != nil {
		return nil, nil, errors.Wrap(err, "delete escrow")
	}
	return escrowAddr, escrow, nil
}

// Escrow returns the escrow for given target and effective time.
// ErrEscrowNotFound is returned if it does not exist.
func (c *Controller) Escrow(db authlock.ReadOnlyKVStore, target authlock.Address, effective authlock.UnixTime) (authlock.Address, *Escrow, error) {
	escrowAddr, _, err := c.EscrowAddress(target, effective)
	if err != nil {
		return nil, nil, errors.Wrap(err, "escrow address")
	}
	escrow, err := c.load(db, escrowAddr)
	if err != nil {
		return nil, nil, err
	}
	return escrowAddr, escrow, nil
}

func (c *Controller) load(db authlock.ReadOnlyKVStore, escrowAddr authlock.Address) (*Escrow, error) {
	var escrow Escrow
	switch err := c.bucket.One(db, escrowAddr, &escrow); {
	case err == nil:
		return &escrow, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrEscrowNotFound, "escrow %s", escrowAddr)
	default:
		return nil, errors.Wrap(err, "load escrow")
	}
}

// requireDerived returns ErrInput if an explicitly given address does not
// match the derived one.
func requireDerived(program, programData, escrowAddr, escrow authlock.Address) error {
	if len(programData) != 0 {
		want, _, err := loader.ProgramDataAddress(program)
		if err != nil {
			return errors.Wrap(err, "program data address")
		}
		if !want.Equals(programData) {
			return errors.Wrapf(errors.ErrInput, "program data %s is not %s", programData, want)
		}
	}
	if len(escrow) != 0 && !escrow.Equals(escrowAddr) {
		return errors.Wrapf(errors.ErrInput, "escrow %s is not %s", escrow, escrowAddr)
	}
	return nil
}
