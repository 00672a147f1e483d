/*
Package sigs verifies the ed25519 signatures of a transaction and keeps a
sequence per public key so that a signed transaction is accepted only once.
*/
package sigs

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// Decorator verifies the signatures of a SignedTx and puts the signers in
// the context for the handlers below. Transactions that cannot carry
// signatures pass through untouched.
type Decorator struct {
	allowUnsigned bool
}

var _ bridge.Decorator = Decorator{}

// NewDecorator requires at least one valid signature, bound to the chain
// id of the context.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets a SignedTx without signatures through. Handlers
// then see no signer.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowUnsigned = true
	return d
}

func (d Decorator) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Checker) (*bridge.CheckResult, error) {
	ctx, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d Decorator) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Deliverer) (*bridge.DeliverResult, error) {
	ctx, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) verify(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (bridge.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(db, stx, bridge.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "verify signatures")
	}
	if len(signers) == 0 && !d.allowUnsigned {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction is not signed")
	}
	return withSigners(ctx, signers), nil
}
