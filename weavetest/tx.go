package weavetest

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg authlock.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ authlock.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (authlock.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message with a configurable route path. It is
// serializable so that authlock.LoadMsg can copy it.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string `protobuf:"bytes,1,opt,name=route_path,json=routePath,proto3" json:"route_path,omitempty"`
	// Content is an opaque payload.
	Content []byte `protobuf:"bytes,2,opt,name=content,proto3" json:"content,omitempty"`
	// Invalid if set makes the Validate method fail.
	Invalid bool `protobuf:"varint,3,opt,name=invalid,proto3" json:"invalid,omitempty"`
}

var _ authlock.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return proto.CompactTextString(m) }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	if m.Invalid {
		return errors.Wrap(errors.ErrMsg, "invalid test message")
	}
	return nil
}
