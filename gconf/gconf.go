package gconf

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// Configuration is a protobuf message holding the settings of one package.
type Configuration interface {
	authlock.Persistent
	Validate() error
}

// Getter is the read access Load needs.
type Getter interface {
	Get(key []byte) ([]byte, error)
}

// Setter is the access Save needs.
type Setter interface {
	Getter
	Set(key, value []byte) error
}

// keyPrefix is shorter than any orm bucket name, so configuration keys
// never collide with bucket entries.
const keyPrefix = "_c:"

func key(pkg string) []byte {
	return []byte(keyPrefix + pkg)
}

// Save validates conf and stores it as the configuration of pkg,
// replacing any previous one.
func Save(db Setter, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := authlock.Marshal(conf)
	if err != nil {
		return err
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned if
// none was saved.
func Load(db Getter, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrap(err, "read")
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	return authlock.Unmarshal(raw, dst)
}

// InitConfig saves the genesis configuration of pkg, found under
// conf.<pkg> of the application state. ErrNotFound is returned if the
// genesis does not configure pkg.
func InitConfig(db Setter, opts authlock.Options, pkg string, conf Configuration) error {
	var sections authlock.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return err
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
