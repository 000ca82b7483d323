package main

import (
	"fmt"
	"os"

	"github.com/iov-one/authlock/crypto"
	"github.com/iov-one/authlock/errors"
	"github.com/urfave/cli/v2"
)

var (
	keyFlag = &cli.StringFlag{
		Name:  "key",
		Usage: "private key file, defaults to key_file from the configuration",
	}
	bech32Flag = &cli.BoolFlag{
		Name:  "bech32",
		Usage: "print the address using the bech32 format",
	}
)

var commandKeygen = &cli.Command{
	Name:  "keygen",
	Usage: "generate a new private key",
	Description: `When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.`,
	Flags:  []cli.Flag{keyFlag},
	Action: keygen,
}

func keygen(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	path := e.keyPath(c)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Never overwrite an existing key. It must be removed manually.
		return errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists", path)
	}

	key := crypto.GenPrivKeyEd25519()
	if err := os.WriteFile(path, key.Ed25519, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "write private key: %s", err)
	}
	_, err = fmt.Fprintln(e.out, key.PublicKey().Address())
	return err
}

var commandKeyaddr = &cli.Command{
	Name:   "keyaddr",
	Usage:  "print the address associated with a private key",
	Flags:  []cli.Flag{keyFlag, bech32Flag},
	Action: keyaddr,
}

func keyaddr(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	key, err := readKey(e.keyPath(c))
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	if !c.Bool(bech32Flag.Name) {
		_, err = fmt.Fprintln(e.out, addr)
		return err
	}
	enc, err := addr.Bech32()
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(e.out, enc)
	return err
}
