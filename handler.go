package bridge

import (
	"encoding/json"

	"github.com/iov-one/bridge/errors"
)

// Handler is a core engine that can process a few specific messages. This
// could represent "open a deposit lock-box", or "add a manager".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction. It
// is its own interface to allow better type controls in the next arguments in
// Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction. It is its own
// interface to allow better type controls in the next arguments in
// Decorator.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication, or logging, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult captures any non-error results of a Check call.
type CheckResult struct {
	// Log is human-readable informational string
	Log string
}

// DeliverResult captures any non-error results of a Deliver call.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a newly
	// created lock-box.
	Data []byte
	// Log is human-readable informational string
	Log string
}

// Options are the genesis options. Each extension can look up it's key and
// parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj. Returns an error if it cannot parse. Noop and no error
// if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from genesis
// file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers allows combining many Initializers into one.
type ChainInitializers []Initializer

var _ Initializer = ChainInitializers{}

// FromGenesis calls each initializer in order. The first failure stops the
// process.
func (c ChainInitializers) FromGenesis(opts Options, kv KVStore) error {
	for _, ini := range c {
		if err := ini.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
