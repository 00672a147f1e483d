package bridgetest

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bridge"
)

// Tx represents a transaction carrying a single message. It is never
// serialized.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg bridge.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ bridge.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (bridge.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return "bridgetest.Tx" }
func (tx *Tx) ProtoMessage()  {}

// Msg represents a message with a configurable route.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string `protobuf:"bytes,1,opt,name=route_path,proto3"`
	// Payload is carried along unchanged.
	Payload []byte `protobuf:"bytes,2,opt,name=payload,proto3"`
}

var _ bridge.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return nil
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return proto.CompactTextString(m) }
func (*Msg) ProtoMessage()    {}
