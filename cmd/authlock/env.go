package main

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/app"
	stack "github.com/iov-one/authlock/cmd/authlock/app"
	"github.com/iov-one/authlock/crypto"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ed25519"
)

// env is shared by all commands.
type env struct {
	cfg    Config
	logger log.Logger
	out    io.Writer
}

func newEnv(c *cli.Context) (*env, error) {
	cfg, err := loadConfig(c.String(homeFlag.Name), c.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if lvl := c.String(logLevelFlag.Name); lvl != "" {
		cfg.LogLevel = lvl
	}
	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, out: c.App.Writer}, nil
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	if level == "none" {
		return log.NewNopLogger(), nil
	}
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, allowed).With("module", "authlock"), nil
}

// withLedger opens the ledger stored in the configured database and closes
// it once fn returns.
func (e *env) withLedger(fn func(*app.Ledger) error) (err error) {
	db, err := stack.CommitKVStore(e.cfg.DBDir)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); err == nil {
			err = cerr
		}
	}()

	l, err := stack.NewLedger(db, e.logger)
	if err != nil {
		return err
	}
	return fn(l)
}

// submit delivers the message at the block time requested on the command
// line. The transaction is signed only if a key is given.
func (e *env) submit(c *cli.Context, l *app.Ledger, msg authlock.Msg, key crypto.Signer) (*authlock.DeliverResult, error) {
	if l.ChainID() == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized, run init first")
	}
	now, err := blockTime(c)
	if err != nil {
		return nil, err
	}
	tx := app.NewTx(msg)
	if key != nil {
		seq, err := nextSequence(l, key.PublicKey().Address())
		if err != nil {
			return nil, err
		}
		if err := tx.Sign(key, l.ChainID(), seq); err != nil {
			return nil, errors.Wrap(err, "sign")
		}
	}
	return l.Deliver(now, tx)
}

func nextSequence(l *app.Ledger, signer authlock.Address) (int64, error) {
	res, err := l.Query("/auth", signer)
	if err != nil {
		return 0, errors.Wrap(err, "query sequence")
	}
	if len(res) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := authlock.Unmarshal(res[0].Value, &user); err != nil {
		return 0, errors.Wrap(err, "unmarshal user data")
	}
	return user.Sequence, nil
}

func (e *env) printJSON(v interface{}) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// keyPath returns the key file given on the command line or the one from
// the configuration.
func (e *env) keyPath(c *cli.Context) string {
	if p := c.String(keyFlag.Name); p != "" {
		return p
	}
	return e.cfg.KeyFile
}

func readKey(path string) (*crypto.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}

func blockTime(c *cli.Context) (time.Time, error) {
	s := c.String(nowFlag.Name)
	if s == "" {
		return time.Now(), nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Time(), nil
}

// parseTime accepts either unix seconds or an RFC3339 formatted time.
func parseTime(s string) (authlock.UnixTime, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return authlock.UnixTime(n), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid time %q", s)
	}
	return authlock.AsUnixTime(t), nil
}

func addressFlag(c *cli.Context, name string) (authlock.Address, error) {
	addr, err := authlock.ParseAddress(c.String(name))
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", name)
	}
	return addr, nil
}
