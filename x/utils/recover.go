package utils

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// Recovery turns a panic further down the stack into an ErrPanic result.
// Place it first so that every other step is covered.
type Recovery struct{}

var _ bridge.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Checker) (_ *bridge.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Deliverer) (_ *bridge.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
