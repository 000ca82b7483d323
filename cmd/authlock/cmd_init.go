package main

import (
	"fmt"

	"github.com/iov-one/authlock/app"
	"github.com/iov-one/authlock/errors"
	"github.com/urfave/cli/v2"
)

var genesisFlag = &cli.StringFlag{
	Name:  "genesis",
	Usage: "genesis file, defaults to genesis_file from the configuration",
}

var commandInit = &cli.Command{
	Name:  "init",
	Usage: "initialize the ledger from a genesis file",
	Description: `The chain id is taken from the genesis file. If the genesis does not declare
one, chain_id from the configuration is used. A ledger can be initialized
only once.`,
	Flags:  []cli.Flag{genesisFlag},
	Action: initLedger,
}

func initLedger(c *cli.Context) error {
	e, err := newEnv(c)
	if err != nil {
		return err
	}
	path := c.String(genesisFlag.Name)
	if path == "" {
		path = e.cfg.GenesisFile
	}
	gen, err := app.LoadGenesis(path)
	if err != nil {
		return err
	}
	switch {
	case gen.ChainID == "":
		gen.ChainID = e.cfg.ChainID
	case e.cfg.ChainID != "" && e.cfg.ChainID != gen.ChainID:
		return errors.Wrapf(errors.ErrInput, "genesis chain id %q does not match configured %q", gen.ChainID, e.cfg.ChainID)
	}

	return e.withLedger(func(l *app.Ledger) error {
		if err := l.InitChain(gen); err != nil {
			return err
		}
		_, err := fmt.Fprintln(e.out, l.ChainID())
		return err
	})
}
