package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bridge/x/sigs"
)

// Tx is the envelope of every message submitted to the ledger. The message
// is kept serialized and decoded by its path.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Path       string               `protobuf:"bytes,2,opt,name=path,proto3" json:"path"`
	Msg        []byte               `protobuf:"bytes,3,opt,name=msg,proto3" json:"msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}
