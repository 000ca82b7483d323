package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/authlock"
)

// EscrowState is the state of an escrow.
type EscrowState int32

const (
	EscrowStateInvalid  EscrowState = 0
	EscrowStatePending  EscrowState = 1
	EscrowStateExecuted EscrowState = 2
)

var escrowStateName = map[EscrowState]string{
	EscrowStateInvalid:  "Invalid",
	EscrowStatePending:  "Pending",
	EscrowStateExecuted: "Executed",
}

func (s EscrowState) String() string {
	if name, ok := escrowStateName[s]; ok {
		return name
	}
	return "Unknown"
}

// Escrow is a pending transfer of a program authority.
type Escrow struct {
	Metadata *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Target is the authority that takes over the program.
	Target authlock.Address `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
	// EffectiveTime is the earliest time the transfer can be executed.
	EffectiveTime authlock.UnixTime `protobuf:"varint,3,opt,name=effective_time,json=effectiveTime,proto3,casttype=github.com/iov-one/authlock.UnixTime" json:"effective_time,omitempty"`
	// Proposer is the program authority at the time of the proposal.
	Proposer authlock.Address `protobuf:"bytes,4,opt,name=proposer,proto3" json:"proposer,omitempty"`
	// Program is the program whose authority is transferred.
	Program authlock.Address `protobuf:"bytes,5,opt,name=program,proto3" json:"program,omitempty"`
	State   EscrowState      `protobuf:"varint,6,opt,name=state,proto3,casttype=EscrowState" json:"state,omitempty"`
	// Bump is the disambiguation suffix used to derive the escrow address.
	Bump uint32 `protobuf:"varint,7,opt,name=bump,proto3" json:"bump,omitempty"`
	// Custody is set when the program authority was moved to the escrow
	// address during the proposal.
	Custody bool `protobuf:"varint,8,opt,name=custody,proto3" json:"custody,omitempty"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

// Configuration is the on-ledger configuration of the timelock extension.
type Configuration struct {
	Metadata *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner is allowed to update the configuration.
	Owner authlock.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	// MaxDelay is the longest accepted time between the proposal and the
	// effective time. Zero means no limit.
	MaxDelay authlock.UnixDuration `protobuf:"varint,3,opt,name=max_delay,json=maxDelay,proto3,casttype=github.com/iov-one/authlock.UnixDuration" json:"max_delay,omitempty"`
	// Custody if set makes the proposal move the program authority to the
	// escrow address.
	Custody bool `protobuf:"varint,4,opt,name=custody,proto3" json:"custody,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// GetOwner is nil safe.
func (m *Configuration) GetOwner() authlock.Address {
	if m != nil {
		return m.Owner
	}
	return nil
}

// ProposeMsg schedules the transfer of a program authority to the target.
// It must be signed by the current program authority.
type ProposeMsg struct {
	Metadata *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Authority is the current program authority.
	Authority     authlock.Address  `protobuf:"bytes,2,opt,name=authority,proto3" json:"authority,omitempty"`
	Target        authlock.Address  `protobuf:"bytes,3,opt,name=target,proto3" json:"target,omitempty"`
	Program       authlock.Address  `protobuf:"bytes,4,opt,name=program,proto3" json:"program,omitempty"`
	EffectiveTime authlock.UnixTime `protobuf:"varint,5,opt,name=effective_time,json=effectiveTime,proto3,casttype=github.com/iov-one/authlock.UnixTime" json:"effective_time,omitempty"`
	// ProgramData if given must be the program data address of the program.
	ProgramData authlock.Address `protobuf:"bytes,6,opt,name=program_data,json=programData,proto3" json:"program_data,omitempty"`
	// Escrow if given must be the escrow address for the target and the
	// effective time.
	Escrow authlock.Address `protobuf:"bytes,7,opt,name=escrow,proto3" json:"escrow,omitempty"`
}

func (m *ProposeMsg) Reset()         { *m = ProposeMsg{} }
func (m *ProposeMsg) String() string { return proto.CompactTextString(m) }
func (*ProposeMsg) ProtoMessage()    {}

// TransferMsg executes a proposed transfer. Anyone can submit it.
type TransferMsg struct {
	Metadata      *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Target        authlock.Address   `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
	Program       authlock.Address   `protobuf:"bytes,3,opt,name=program,proto3" json:"program,omitempty"`
	EffectiveTime authlock.UnixTime  `protobuf:"varint,4,opt,name=effective_time,json=effectiveTime,proto3,casttype=github.com/iov-one/authlock.UnixTime" json:"effective_time,omitempty"`
	// ProgramData if given must be the program data address of the program.
	ProgramData authlock.Address `protobuf:"bytes,5,opt,name=program_data,json=programData,proto3" json:"program_data,omitempty"`
	// Escrow if given must be the escrow address for the target and the
	// effective time.
	Escrow authlock.Address `protobuf:"bytes,6,opt,name=escrow,proto3" json:"escrow,omitempty"`
	// Loader if given must be the loader identity.
	Loader authlock.Address `protobuf:"bytes,7,opt,name=loader,proto3" json:"loader,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

// UpdateConfigurationMsg changes the configuration. Only non zero fields of
// the patch are applied.
type UpdateConfigurationMsg struct {
	Metadata *authlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration     `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}
