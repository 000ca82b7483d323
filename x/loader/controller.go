package loader

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// Controller is the only writer of ProgramData records.
type Controller struct {
	bucket ProgramDataBucket
}

// NewController returns a controller operating on given bucket.
func NewController(bucket ProgramDataBucket) *Controller {
	return &Controller{bucket: bucket}
}

// Program returns the metadata record of given program. ErrNotFound is
// returned if the program is not deployed.
func (c *Controller) Program(db authlock.ReadOnlyKVStore, program authlock.Address) (*ProgramData, error) {
	addr, _, err := ProgramDataAddress(program)
	if err != nil {
		return nil, err
	}
	var data ProgramData
	if err := c.bucket.One(db, addr, &data); err != nil {
		return nil, errors.Wrapf(err, "program %s", program)
	}
	return &data, nil
}

// Deploy creates the metadata record of a new program. ErrDuplicate is
// returned if the program is already deployed.
func (c *Controller) Deploy(db authlock.KVStore, program, authority authlock.Address, codeHash []byte, at authlock.UnixTime) (*ProgramData, error) {
	addr, bump, err := ProgramDataAddress(program)
	if err != nil {
		return nil, err
	}
	switch err := c.bucket.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "program %s", program)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	data := &ProgramData{
		Metadata:   &authlock.Metadata{Schema: 1},
		Program:    program,
		Authority:  authority,
		CodeHash:   codeHash,
		DeployedAt: at,
		Bump:       uint32(bump),
	}
	if err := c.bucket.Put(db, addr, data); err != nil {
		return nil, errors.Wrap(err, "save program data")
	}
	return data, nil
}

// CurrentAuthority returns the upgrade authority of given program. An empty
// address is returned for an immutable program.
func (c *Controller) CurrentAuthority(db authlock.ReadOnlyKVStore, program authlock.Address) (authlock.Address, error) {
	data, err := c.Program(db, program)
	if err != nil {
		return nil, err
	}
	return data.Authority, nil
}

// SetAuthority changes the upgrade authority of given program. The acting
// identity must be the authority stored at the time of the call. An empty
// new authority makes the program immutable.
func (c *Controller) SetAuthority(db authlock.KVStore, program, newAuthority, acting authlock.Address) error {
	addr, _, err := ProgramDataAddress(program)
	if err != nil {
		return err
	}
	var data ProgramData
	if err := c.bucket.One(db, addr, &data); err != nil {
		return errors.Wrapf(err, "program %s", program)
	}
	if data.IsImmutable() {
		return errors.Wrapf(ErrImmutable, "program %s", program)
	}
	if !data.Authority.Equals(acting) {
		return errors.Wrapf(ErrNotCurrentAuthority, "%s is not the authority of %s", acting, program)
	}
	if len(newAuthority) != 0 {
		if err := newAuthority.Validate(); err != nil {
			return errors.Wrap(err, "new authority")
		}
	}
	data.Authority = newAuthority
	if err := c.bucket.Put(db, addr, &data); err != nil {
		return errors.Wrap(err, "save program data")
	}
	return nil
}
