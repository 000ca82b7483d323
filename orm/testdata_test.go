package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/authlock/errors"
)

// counter is a minimal model used by the tests.
type counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

// label is a second model type, incompatible with counter.
type label struct {
	Text string `protobuf:"bytes,1,opt,name=text,proto3" json:"text,omitempty"`
}

func (m *label) Reset()         { *m = label{} }
func (m *label) String() string { return proto.CompactTextString(m) }
func (*label) ProtoMessage()    {}

func (m *label) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}
