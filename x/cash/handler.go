package cash

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r bridge.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ bridge.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed. Funds are not checked.
func (h SendHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Src, msg.Dest, *msg.Amount); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Debug("coins sent", "src", msg.Src, "dest", msg.Dest, "amount", msg.Amount.Human())
	return &bridge.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx bridge.Context, tx bridge.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Src, "account owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}
