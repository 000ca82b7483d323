package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
	"github.com/urfave/cli/v2"
)

// Commonly used command line flags.
var (
	homeFlag = &cli.StringFlag{
		Name:    "home",
		Usage:   "directory to store files under",
		Value:   filepath.Join(os.ExpandEnv("$HOME"), ".authlock"),
		EnvVars: []string{"AUTHLOCK_HOME"},
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file, defaults to config.toml in the home directory",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "one of debug, info, error or none, overrides the configuration",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "print full error details",
	}
)

func newApp(output io.Writer) *cli.App {
	return &cli.App{
		Name:    "authlock",
		Usage:   "time-locked transfer of program upgrade authority",
		Version: authlock.Version(),
		Writer:  output,
		Flags: []cli.Flag{
			homeFlag,
			configFlag,
			logLevelFlag,
			debugFlag,
		},
		Commands: []*cli.Command{
			commandKeygen,
			commandKeyaddr,
			commandDerive,
			commandInit,
			commandDeploy,
			commandSetAuthority,
			commandPropose,
			commandTransfer,
			commandEscrow,
			commandProgram,
		},
	}
}

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		code, log := errors.Info(err, debugEnabled(os.Args))
		fmt.Fprintf(os.Stderr, "Error %d: %s\n", code, log)
		os.Exit(1)
	}
}

func debugEnabled(args []string) bool {
	for _, a := range args {
		if a == "--debug" || a == "-debug" {
			return true
		}
	}
	return false
}
