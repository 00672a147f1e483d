package coin

import "github.com/gogo/protobuf/proto"

// Coin is an amount of a single currency.
type Coin struct {
	// Ticker is the currency code.
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	// Amount is the value in the smallest denomination.
	Amount Amount `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
}

func (m *Coin) Reset()         { *m = Coin{} }
func (m *Coin) String() string { return proto.CompactTextString(m) }
func (*Coin) ProtoMessage()    {}
