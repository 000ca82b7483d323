package app

import (
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/crypto"
	"github.com/iov-one/authlock/errors"
	"github.com/iov-one/authlock/x/sigs"
)

// Tx is the transaction type accepted by the ledger. It carries a single
// message and any number of signatures over it.
type Tx struct {
	Msg        authlock.Msg
	Signatures []*sigs.StdSignature
}

var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg authlock.Msg) *Tx {
	return &Tx{Msg: msg}
}

// GetMsg returns the message of this transaction.
func (tx *Tx) GetMsg() (authlock.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes that are signed by every signer. The
// message path is included so that two messages with the same serialized
// content but different meaning never share a signature.
//
//	path | 0x00 | serialized message
func (tx *Tx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := authlock.Marshal(msg)
	if err != nil {
		return nil, err
	}
	path := msg.Path()
	out := make([]byte, 0, len(path)+1+len(raw))
	out = append(out, path...)
	out = append(out, 0)
	out = append(out, raw...)
	return out, nil
}

// Sign appends the signature of given key to the transaction.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
