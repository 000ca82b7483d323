package main

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/x/loader"
	"github.com/iov-one/authlock/x/timelock"
	"github.com/urfave/cli/v2"
)

var (
	programFlag = &cli.StringFlag{
		Name:     "program",
		Usage:    "program address",
		Required: true,
	}
	targetFlag = &cli.StringFlag{
		Name:  "target",
		Usage: "address of the new upgrade authority",
	}
	atFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "effective time of the transfer, unix seconds or RFC3339",
	}
	nowFlag = &cli.StringFlag{
		Name:  "now",
		Usage: "block time, unix seconds or RFC3339, defaults to the wall clock",
	}
)

var commandDerive = &cli.Command{
	Name:  "derive",
	Usage: "print the derived program data and escrow addresses",
	Description: `The program data address is always printed. The escrow address is printed
when both the target and the effective time are given.`,
	Flags:  []cli.Flag{programFlag, targetFlag, atFlag},
	Action: derive,
}

type derivedAddresses struct {
	ProgramData     authlock.Address `json:"program_data"`
	ProgramDataBump uint8            `json:"program_data_bump"`
	Escrow          authlock.Address `json:"escrow,omitempty"`
	EscrowBump      uint8            `json:"escrow_bump,omitempty"`
}

func derive(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	program, err := addressFlag(c, programFlag.Name)
	if err != nil {
		return err
	}
	var res derivedAddresses
	res.ProgramData, res.ProgramDataBump, err = loader.ProgramDataAddress(program)
	if err != nil {
		return err
	}

	if c.IsSet(targetFlag.Name) || c.IsSet(atFlag.Name) {
		target, at, err := escrowKey(c)
		if err != nil {
			return err
		}
		res.Escrow, res.EscrowBump, err = timelock.EscrowAddress(target, at)
		if err != nil {
			return err
		}
	}
	return e.printJSON(res)
}

// escrowKey returns the target and effective time an escrow is derived
// from. Both must be given.
func escrowKey(c *cli.Context) (authlock.Address, authlock.UnixTime, error) {
	if !c.IsSet(targetFlag.Name) || !c.IsSet(atFlag.Name) {
		return nil, 0, errors.Wrap(errors.ErrInput, "both --target and --at are required")
	}
	target, err := addressFlag(c, targetFlag.Name)
	if err != nil {
		return nil, 0, err
	}
	at, err := parseTime(c.String(atFlag.Name))
	if err != nil {
		return nil, 0, err
	}
	return target, at, nil
}
