package bridgetest

import "github.com/iov-one/bridge"

// Decorator passes every call to the next handler unless the error for the
// call kind is set. Calls are counted whether they fail or not.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	calls int
}

var _ bridge.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Checker) (*bridge.CheckResult, error) {
	d.calls++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx, next bridge.Deliverer) (*bridge.DeliverResult, error) {
	d.calls++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CallCount returns the number of Check and Deliver calls so far.
func (d *Decorator) CallCount() int {
	return d.calls
}
