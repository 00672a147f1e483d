package bridgetest

import (
	"context"

	"github.com/iov-one/bridge"
)

// Auth authorizes a fixed set of signers.
type Auth struct {
	Signer  bridge.Condition
	Signers []bridge.Condition
}

func (a *Auth) GetConditions(bridge.Context) []bridge.Condition {
	conds := append([]bridge.Condition(nil), a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx bridge.Context, addr bridge.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authorizes the signers stored in the context under Key, so that
// a single handler can be called with different signers.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context where conds authorized the transaction.
func (a *CtxAuth) SetConditions(ctx bridge.Context, conds ...bridge.Condition) bridge.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx bridge.Context) []bridge.Condition {
	conds, _ := ctx.Value(a.Key).([]bridge.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx bridge.Context, addr bridge.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []bridge.Condition, addr bridge.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
