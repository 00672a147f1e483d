package sigs

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/bridgetest"
)

// stdTx is a signed transaction used by tests only.
type stdTx struct {
	bridgetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*stdTx)(nil)
var _ bridge.Tx = (*stdTx)(nil)

func newStdTx(payload []byte) *stdTx {
	return &stdTx{
		Tx: bridgetest.Tx{Msg: &bridgetest.Msg{RoutePath: "test/sigs", Payload: payload}},
	}
}

func (tx *stdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *stdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return bridge.Marshal(msg)
}

// sigCheckHandler stores the signers it was called with.
type sigCheckHandler struct {
	Signers []bridge.Condition
}

var _ bridge.Handler = (*sigCheckHandler)(nil)

func (s *sigCheckHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &bridge.CheckResult{}, nil
}

func (s *sigCheckHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &bridge.DeliverResult{}, nil
}
