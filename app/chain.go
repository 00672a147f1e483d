package app

import (
	"reflect"

	"github.com/iov-one/bridge"
)

// Decorators is an ordered stack of decorators waiting for a handler.
type Decorators struct {
	chain []bridge.Decorator
}

// ChainDecorators starts a stack. Nil decorators, including typed nil
// pointers, are skipped so that optional steps can be passed as they are.
//
//	app.ChainDecorators(
//		utils.NewRecovery(),
//		utils.NewLogging(),
//		utils.NewSavepoint().OnDeliver(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
func ChainDecorators(chain ...bridge.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with the decorators appended. The receiver is
// not modified.
func (d Decorators) Chain(chain ...bridge.Decorator) Decorators {
	next := make([]bridge.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNilDecorator(d bridge.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack. The first decorator runs first and h runs
// last.
func (d Decorators) WithHandler(h bridge.Handler) bridge.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step runs a single decorator in front of the rest of the stack.
type step struct {
	d    bridge.Decorator
	next bridge.Handler
}

var _ bridge.Handler = step{}

func (s step) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
