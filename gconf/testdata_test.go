package gconf

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/errors"
)

// myconfig and myconfigMsg stand in for an extension configuration and
// its update message.
type myconfig struct {
	Metadata *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    authlock.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Num      int64              `protobuf:"varint,3,opt,name=num,proto3" json:"num,omitempty"`
	Str      string             `protobuf:"bytes,4,opt,name=str,proto3" json:"str,omitempty"`
}

func (c *myconfig) Reset()         { *c = myconfig{} }
func (c *myconfig) String() string { return proto.CompactTextString(c) }
func (*myconfig) ProtoMessage()    {}

func (c *myconfig) GetOwner() authlock.Address {
	return c.Owner
}

func (c *myconfig) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return nil
}

type myconfigMsg struct {
	Metadata *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *myconfig          `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

var _ UpdateMsg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Reset()         { *msg = myconfigMsg{} }
func (msg *myconfigMsg) String() string { return proto.CompactTextString(msg) }
func (*myconfigMsg) ProtoMessage()      {}
func (msg *myconfigMsg) Path() string   { return "gconf/myconfig" }

func (msg *myconfigMsg) ConfigPatch() OwnedConfig {
	if msg.Patch == nil {
		return nil
	}
	return msg.Patch
}

func (msg *myconfigMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return err
	}
	if msg.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if msg.Patch.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return nil
}
