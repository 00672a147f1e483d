package bridgetest

import "github.com/iov-one/bridge"

// Handler returns the configured result or error and counts its calls.
type Handler struct {
	CheckResult   bridge.CheckResult
	CheckErr      error
	DeliverResult bridge.DeliverResult
	DeliverErr    error

	checkCall   int
	deliverCall int
}

var _ bridge.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CallCount returns the number of Check and Deliver calls so far.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler stores a value under a key and then fails with Err, if set.
// It helps to verify that failed calls leave no trace in the store.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ bridge.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &bridge.DeliverResult{}, h.Err
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ bridge.Handler = PanicHandler{}

func (p PanicHandler) Check(bridge.Context, bridge.KVStore, bridge.Tx) (*bridge.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(bridge.Context, bridge.KVStore, bridge.Tx) (*bridge.DeliverResult, error) {
	panic(p.Msg)
}
