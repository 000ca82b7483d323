package main

import (
	"encoding/hex"
	"time"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/app"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/x/loader"
	"github.com/iov-one/authlock/x/timelock"
	"github.com/urfave/cli/v2"
)

var ownedByFlag = &cli.StringFlag{
	Name:  "program",
	Usage: "list all pending escrows of a program",
}

var commandEscrow = &cli.Command{
	Name:  "escrow",
	Usage: "show pending escrows",
	Description: `Show a single escrow identified by --target and --at or all escrows of a
program when --program is given.`,
	Flags:  []cli.Flag{targetFlag, atFlag, ownedByFlag},
	Action: showEscrow,
}

type escrowView struct {
	Address       authlock.Address `json:"address"`
	Program       authlock.Address `json:"program"`
	Target        authlock.Address `json:"target"`
	Proposer      authlock.Address `json:"proposer"`
	EffectiveTime time.Time        `json:"effective_time"`
	State         string           `json:"state"`
	Custody       bool             `json:"custody"`
}

func newEscrowView(addr authlock.Address, e *timelock.Escrow) escrowView {
	return escrowView{
		Address:       addr,
		Program:       e.Program,
		Target:        e.Target,
		Proposer:      e.Proposer,
		EffectiveTime: e.EffectiveTime.Time().UTC(),
		State:         e.State.String(),
		Custody:       e.Custody,
	}
}

func showEscrow(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	if c.IsSet(ownedByFlag.Name) {
		program, err := addressFlag(c, ownedByFlag.Name)
		if err != nil {
			return err
		}
		return e.withLedger(func(l *app.Ledger) error {
			views, err := programEscrows(l, program)
			if err != nil {
				return err
			}
			return e.printJSON(views)
		})
	}

	target, at, err := escrowKey(c)
	if err != nil {
		return err
	}
	addr, _, err := timelock.EscrowAddress(target, at)
	if err != nil {
		return err
	}
	return e.withLedger(func(l *app.Ledger) error {
		res, err := l.Query("/escrows", addr)
		if err != nil {
			return err
		}
		if len(res) == 0 {
			return errors.Wrapf(timelock.ErrEscrowNotFound, "escrow %s", addr)
		}
		var esc timelock.Escrow
		if err := authlock.Unmarshal(res[0].Value, &esc); err != nil {
			return errors.Wrap(err, "unmarshal escrow")
		}
		return e.printJSON(newEscrowView(addr, &esc))
	})
}

// programEscrows returns all pending escrows of the given program.
func programEscrows(l *app.Ledger, program authlock.Address) ([]escrowView, error) {
	res, err := l.Query("/escrows?"+timelock.ProgramQueryMod, program)
	if err != nil {
		return nil, err
	}
	views := make([]escrowView, 0, len(res))
	for _, m := range res {
		var esc timelock.Escrow
		if err := authlock.Unmarshal(m.Value, &esc); err != nil {
			return nil, errors.Wrap(err, "unmarshal escrow")
		}
		views = append(views, newEscrowView(m.Key, &esc))
	}
	return views, nil
}

var commandProgram = &cli.Command{
	Name:   "program",
	Usage:  "show the program data",
	Flags:  []cli.Flag{programFlag},
	Action: showProgram,
}

type programView struct {
	Address    authlock.Address `json:"address"`
	Program    authlock.Address `json:"program"`
	Authority  authlock.Address `json:"authority"`
	Immutable  bool             `json:"immutable"`
	CodeHash   string           `json:"code_hash"`
	DeployedAt time.Time        `json:"deployed_at"`
}

func showProgram(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	program, err := addressFlag(c, programFlag.Name)
	if err != nil {
		return err
	}
	addr, _, err := loader.ProgramDataAddress(program)
	if err != nil {
		return err
	}
	return e.withLedger(func(l *app.Ledger) error {
		res, err := l.Query("/programs", addr)
		if err != nil {
			return err
		}
		if len(res) == 0 {
			return errors.Wrapf(errors.ErrNotFound, "program %s", program)
		}
		var data loader.ProgramData
		if err := authlock.Unmarshal(res[0].Value, &data); err != nil {
			return errors.Wrap(err, "unmarshal program data")
		}
		return e.printJSON(programView{
			Address:    addr,
			Program:    data.Program,
			Authority:  data.Authority,
			Immutable:  data.IsImmutable(),
			CodeHash:   hex.EncodeToString(data.CodeHash),
			DeployedAt: data.DeployedAt.Time().UTC(),
		})
	})
}
