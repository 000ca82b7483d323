package authlock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/authlock/errors"
)

// Persistent is a protobuf message. Everything stored or signed is one.
type Persistent interface {
	proto.Message
}

// Marshal returns the protobuf encoding of p.
func Marshal(p Persistent) ([]byte, error) {
	raw, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", p, err)
	}
	return raw, nil
}

// Unmarshal decodes raw into p, replacing its content.
func Unmarshal(raw []byte, p Persistent) error {
	if err := proto.Unmarshal(raw, p); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", p, err)
	}
	return nil
}

// Msg is a request for a state transition. It carries no authentication
// data; signatures travel in the enclosing Tx.
type Msg interface {
	Persistent

	// Path is the route of the message. All messages handled by the same
	// handler share it. It must match IsValidPath.
	Path() string

	// Validate checks the message content without reading the state.
	Validate() error
}

// Tx is a transaction as submitted to the ledger.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath returns the route of the transaction message, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the transaction message into dst and validates it. The
// message must have the same route as dst. dst never shares memory with
// the transaction.
func LoadMsg(tx Tx, dst Msg) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "no message")
	case msg.Path() != dst.Path():
		return errors.Wrapf(errors.ErrType, "want %s message, got %s", dst.Path(), msg.Path())
	}
	raw, err := Marshal(msg)
	if err != nil {
		return err
	}
	if err := Unmarshal(raw, dst); err != nil {
		return err
	}
	return errors.Wrap(dst.Validate(), "invalid message")
}
