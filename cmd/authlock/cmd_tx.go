package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/app"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/x/loader"
	"github.com/iov-one/authlock/x/timelock"
	"github.com/urfave/cli/v2"
)

var (
	codeFlag = &cli.StringFlag{
		Name:  "code",
		Usage: "file with the program code, its sha256 hash is stored",
	}
	codeHashFlag = &cli.StringFlag{
		Name:  "code-hash",
		Usage: "hex encoded sha256 hash of the program code",
	}
	newAuthorityFlag = &cli.StringFlag{
		Name:  "new-authority",
		Usage: "address of the new upgrade authority",
	}
	immutableFlag = &cli.BoolFlag{
		Name:  "immutable",
		Usage: "remove the upgrade authority for good",
	}
)

var commandDeploy = &cli.Command{
	Name:   "deploy",
	Usage:  "deploy a program with the key owner as its upgrade authority",
	Flags:  []cli.Flag{keyFlag, nowFlag, programFlag, codeFlag, codeHashFlag},
	Action: deploy,
}

func deploy(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	key, err := readKey(e.keyPath(c))
	if err != nil {
		return err
	}
	program, err := addressFlag(c, programFlag.Name)
	if err != nil {
		return err
	}
	codeHash, err := readCodeHash(c)
	if err != nil {
		return err
	}
	msg := &loader.DeployMsg{
		Metadata:  &authlock.Metadata{Schema: 1},
		Program:   program,
		Authority: key.PublicKey().Address(),
		CodeHash:  codeHash,
	}
	return e.withLedger(func(l *app.Ledger) error {
		res, err := e.submit(c, l, msg, key)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.out, authlock.Address(res.Data))
		return err
	})
}

func readCodeHash(c *cli.Context) ([]byte, error) {
	switch {
	case c.IsSet(codeFlag.Name) && c.IsSet(codeHashFlag.Name):
		return nil, errors.Wrap(errors.ErrInput, "--code and --code-hash cannot be used together")
	case c.IsSet(codeFlag.Name):
		raw, err := os.ReadFile(c.String(codeFlag.Name))
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "read code: %s", err)
		}
		h := sha256.Sum256(raw)
		return h[:], nil
	case c.IsSet(codeHashFlag.Name):
		h, err := hex.DecodeString(c.String(codeHashFlag.Name))
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "decode code hash: %s", err)
		}
		return h, nil
	default:
		return nil, errors.Wrap(errors.ErrInput, "either --code or --code-hash is required")
	}
}

var commandSetAuthority = &cli.Command{
	Name:  "set-authority",
	Usage: "change the upgrade authority of a program immediately",
	Description: `The transaction must be signed by the current upgrade authority. Use
--immutable to remove the authority. Such a program can never be upgraded
again.`,
	Flags:  []cli.Flag{keyFlag, nowFlag, programFlag, newAuthorityFlag, immutableFlag},
	Action: setAuthority,
}

func setAuthority(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	key, err := readKey(e.keyPath(c))
	if err != nil {
		return err
	}
	program, err := addressFlag(c, programFlag.Name)
	if err != nil {
		return err
	}
	var newAuthority authlock.Address
	switch immutable := c.Bool(immutableFlag.Name); {
	case immutable && c.IsSet(newAuthorityFlag.Name):
		return errors.Wrap(errors.ErrInput, "--immutable and --new-authority cannot be used together")
	case immutable:
	case c.IsSet(newAuthorityFlag.Name):
		if newAuthority, err = addressFlag(c, newAuthorityFlag.Name); err != nil {
			return err
		}
	default:
		return errors.Wrap(errors.ErrInput, "--new-authority is required")
	}

	msg := &loader.SetAuthorityMsg{
		Metadata:     &authlock.Metadata{Schema: 1},
		Program:      program,
		NewAuthority: newAuthority,
	}
	return e.withLedger(func(l *app.Ledger) error {
		_, err := e.submit(c, l, msg, key)
		return err
	})
}

var commandPropose = &cli.Command{
	Name:  "propose",
	Usage: "schedule a transfer of the upgrade authority",
	Description: `The key owner must be the current upgrade authority of the program. The
transfer can be executed by anyone once the effective time has come. The
escrow address is printed.`,
	Flags:  []cli.Flag{keyFlag, nowFlag, programFlag, targetFlag, atFlag},
	Action: propose,
}

func propose(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	key, err := readKey(e.keyPath(c))
	if err != nil {
		return err
	}
	program, err := addressFlag(c, programFlag.Name)
	if err != nil {
		return err
	}
	target, at, err := escrowKey(c)
	if err != nil {
		return err
	}
	msg := &timelock.ProposeMsg{
		Metadata:      &authlock.Metadata{Schema: 1},
		Authority:     key.PublicKey().Address(),
		Target:        target,
		Program:       program,
		EffectiveTime: at,
	}
	return e.withLedger(func(l *app.Ledger) error {
		res, err := e.submit(c, l, msg, key)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.out, authlock.Address(res.Data))
		return err
	})
}

var commandTransfer = &cli.Command{
	Name:  "transfer",
	Usage: "execute a scheduled transfer of the upgrade authority",
	Description: `Anyone can execute the transfer once the effective time has come. The
transaction is not signed. If the time has not come yet, the command fails
and can be repeated later.`,
	Flags:  []cli.Flag{nowFlag, programFlag, targetFlag, atFlag},
	Action: transfer,
}

func transfer(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	program, err := addressFlag(c, programFlag.Name)
	if err != nil {
		return err
	}
	target, at, err := escrowKey(c)
	if err != nil {
		return err
	}
	msg := &timelock.TransferMsg{
		Metadata:      &authlock.Metadata{Schema: 1},
		Target:        target,
		Program:       program,
		EffectiveTime: at,
	}
	return e.withLedger(func(l *app.Ledger) error {
		_, err := e.submit(c, l, msg, nil)
		if timelock.IsTransient(err) {
			e.logger.Info("transfer not yet possible", "effective", at)
		}
		return err
	})
}
