package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
)

// Set may contain Coin of many different currencies.
// It handles adding and subtracting sets of currencies.
type Set struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Coins    []*coin.Coin     `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins"`
}

func (m *Set) Reset()         { *m = Set{} }
func (m *Set) String() string { return proto.CompactTextString(m) }
func (*Set) ProtoMessage()    {}

// SendMsg is a request to move these coins from the given
// source to the given destination address.
type SendMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Src      bridge.Address   `protobuf:"bytes,2,opt,name=src,proto3,casttype=github.com/iov-one/bridge.Address" json:"src,omitempty"`
	Dest     bridge.Address   `protobuf:"bytes,3,opt,name=dest,proto3,casttype=github.com/iov-one/bridge.Address" json:"dest,omitempty"`
	Amount   *coin.Coin       `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// max length 128 character
	Memo string `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}
