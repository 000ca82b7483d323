package loader

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/authlock"
)

// ProgramData is the metadata record of a deployed program.
type ProgramData struct {
	Metadata *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Program is the address of the program this record describes.
	Program authlock.Address `protobuf:"bytes,2,opt,name=program,proto3" json:"program,omitempty"`
	// Authority is allowed to upgrade the program. Empty means the program
	// is immutable.
	Authority authlock.Address `protobuf:"bytes,3,opt,name=authority,proto3" json:"authority,omitempty"`
	// CodeHash is the sha256 digest of the deployed code.
	CodeHash []byte `protobuf:"bytes,4,opt,name=code_hash,json=codeHash,proto3" json:"code_hash,omitempty"`
	// DeployedAt is the block time of the deployment.
	DeployedAt authlock.UnixTime `protobuf:"varint,5,opt,name=deployed_at,json=deployedAt,proto3,casttype=github.com/iov-one/authlock.UnixTime" json:"deployed_at,omitempty"`
	// Bump is the disambiguation suffix used to derive the record address.
	Bump uint32 `protobuf:"varint,6,opt,name=bump,proto3" json:"bump,omitempty"`
}

func (m *ProgramData) Reset()         { *m = ProgramData{} }
func (m *ProgramData) String() string { return proto.CompactTextString(m) }
func (*ProgramData) ProtoMessage()    {}

// DeployMsg registers a new program.
type DeployMsg struct {
	Metadata  *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Program   authlock.Address   `protobuf:"bytes,2,opt,name=program,proto3" json:"program,omitempty"`
	Authority authlock.Address   `protobuf:"bytes,3,opt,name=authority,proto3" json:"authority,omitempty"`
	CodeHash  []byte             `protobuf:"bytes,4,opt,name=code_hash,json=codeHash,proto3" json:"code_hash,omitempty"`
}

func (m *DeployMsg) Reset()         { *m = DeployMsg{} }
func (m *DeployMsg) String() string { return proto.CompactTextString(m) }
func (*DeployMsg) ProtoMessage()    {}

// SetAuthorityMsg changes the upgrade authority of a program. It must be
// signed by the current authority. An empty new authority makes the program
// immutable.
type SetAuthorityMsg struct {
	Metadata     *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Program      authlock.Address   `protobuf:"bytes,2,opt,name=program,proto3" json:"program,omitempty"`
	NewAuthority authlock.Address   `protobuf:"bytes,3,opt,name=new_authority,json=newAuthority,proto3" json:"new_authority,omitempty"`
}

func (m *SetAuthorityMsg) Reset()         { *m = SetAuthorityMsg{} }
func (m *SetAuthorityMsg) String() string { return proto.CompactTextString(m) }
func (*SetAuthorityMsg) ProtoMessage()    {}
