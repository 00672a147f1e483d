package utils

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache
// is written only when the call succeeds, so a failed call leaves the store
// as it was. A savepoint does nothing until enabled with OnCheck or
// OnDeliver, and nothing on a store that cannot be cached.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ bridge.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for Check calls.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for Deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Checker) (*bridge.CheckResult, error) {
	var res *bridge.CheckResult
	err := withSavepoint(s.onCheck, db, func(db bridge.KVStore) error {
		var err error
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Deliverer) (*bridge.DeliverResult, error) {
	var res *bridge.DeliverResult
	err := withSavepoint(s.onDeliver, db, func(db bridge.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func withSavepoint(enabled bool, db bridge.KVStore, fn func(bridge.KVStore) error) error {
	cacheable, ok := db.(bridge.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
