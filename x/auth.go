package x

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// Authenticator tells which addresses authorized the current transaction.
// Handlers receive one in their constructor instead of reading x/sigs
// directly, so tests can plug in fixed signers.
type Authenticator interface {
	// GetConditions returns every condition satisfied by the transaction.
	GetConditions(bridge.Context) []bridge.Condition
	// HasAddress reports whether addr authorized the transaction.
	HasAddress(bridge.Context, bridge.Address) bool
}

// ChainAuth merges several authenticators. An address is authorized when
// any of them accepts it.
func ChainAuth(impls ...Authenticator) Authenticator {
	return chainAuth(impls)
}

type chainAuth []Authenticator

func (c chainAuth) GetConditions(ctx bridge.Context) []bridge.Condition {
	var all []bridge.Condition
	for _, a := range c {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (c chainAuth) HasAddress(ctx bridge.Context, addr bridge.Address) bool {
	for _, a := range c {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all conditions of the transaction.
func GetAddresses(ctx bridge.Context, auth Authenticator) []bridge.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]bridge.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}

// RequireAddress fails with ErrUnauthorized unless addr authorized the
// transaction. The role names the expected signer in the error.
func RequireAddress(ctx bridge.Context, auth Authenticator, addr bridge.Address, role string) error {
	if len(addr) == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "%s not set", role)
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s %s signature required", role, addr)
	}
	return nil
}
