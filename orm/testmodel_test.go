package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bridge/errors"
)

// Counter is a model used only by the tests of this package.
type Counter struct {
	Count int64  `protobuf:"varint,1,opt,name=count,proto3" json:"count"`
	Owner []byte `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
}

func (m *Counter) Reset()         { *m = Counter{} }
func (m *Counter) String() string { return proto.CompactTextString(m) }
func (*Counter) ProtoMessage()    {}

func (m *Counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

// Other is a model of a different type than Counter.
type Other struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name"`
}

func (m *Other) Reset()         { *m = Other{} }
func (m *Other) String() string { return proto.CompactTextString(m) }
func (*Other) ProtoMessage()    {}
func (*Other) Validate() error  { return nil }
