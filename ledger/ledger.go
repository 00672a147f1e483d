package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/app"
	"github.com/iov-one/bridge/crypto"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/x/cash"
	"github.com/iov-one/bridge/x/lockbox"
	"github.com/iov-one/bridge/x/sigs"
	"github.com/iov-one/bridge/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// MetricsNamespace prefixes all collectors registered by a ledger.
const MetricsNamespace = "lockbox"

// Ledger executes transactions against a single committed store. All calls
// are serialized, so the ledger is safe for concurrent use.
type Ledger struct {
	mu sync.Mutex

	chainID string
	store   *app.CommitStore
	handler bridge.Handler
	height  int64

	clock   func() time.Time
	logger  log.Logger
	metrics prometheus.Registerer

	cash    cash.BaseController
	querier lockbox.Querier
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the source of block time. Defaults to the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) { l.clock = clock }
}

// WithLogger sets the logger passed to handlers.
func WithLogger(logger log.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithMetrics registers transaction metrics with given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(l *Ledger) { l.metrics = reg }
}

// New loads the latest state of db and returns a ledger ready to process
// transactions. A ledger that was initialized before must be opened with
// the same chain id.
func New(chainID string, db bridge.CommitKVStore, opts ...Option) (*Ledger, error) {
	if !bridge.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	l := &Ledger{
		chainID: chainID,
		clock:   time.Now,
		logger:  bridge.DefaultLogger,
		cash:    cash.NewController(cash.NewBucket()),
	}
	for _, opt := range opts {
		opt(l)
	}

	store, err := app.NewCommitStore(db)
	if err != nil {
		return nil, err
	}
	l.store = store
	info, err := store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	l.height = info.Version

	switch stored, err := app.LoadChainID(store.DeliverStore()); {
	case err != nil:
		return nil, err
	case stored != "" && stored != chainID:
		return nil, errors.Wrapf(errors.ErrInput, "store belongs to chain %q", stored)
	}

	var metrics *utils.Metrics
	if l.metrics != nil {
		if metrics, err = utils.NewMetrics(l.metrics, MetricsNamespace); err != nil {
			return nil, err
		}
	}

	port := lockbox.NewCashPort(l.cash)
	l.querier = lockbox.NewQuerier(port)

	auth := sigs.Authenticate{}
	router := app.NewRouter()
	cash.RegisterRoutes(router, auth, l.cash)
	lockbox.RegisterRoutes(router, auth, port)

	l.handler = app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		metrics,
		utils.NewSavepoint().OnDeliver(),
		sigs.NewDecorator(),
	).WithHandler(router)
	return l, nil
}

// ChainID returns the chain id this ledger was opened with.
func (l *Ledger) ChainID() string {
	return l.chainID
}

// Height returns the number of committed blocks.
func (l *Ledger) Height() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// Initialized returns true once the genesis was applied.
func (l *Ledger) Initialized() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id, err := app.LoadChainID(l.store.DeliverStore())
	return id != "", err
}

// Genesis initializes the ledger state. Accounts are read from the "cash"
// key, the lock-box configuration from "conf" and the rest of the lock-box
// state from "lockbox". A ledger can be initialized only once.
func (l *Ledger) Genesis(opts bridge.Options) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := l.store.DeliverStore().CacheWrap()
	if err := app.SaveChainID(cache, l.chainID); err != nil {
		cache.Discard()
		return err
	}
	inits := []bridge.Initializer{
		cash.Initializer{},
		lockbox.Initializer{Port: lockbox.NewCashPort(l.cash)},
	}
	for _, in := range inits {
		if err := in.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return l.commit()
}

// Check runs the transaction against a scratch copy of the state. Nothing
// is ever persisted.
func (l *Ledger) Check(tx *Tx) (*bridge.CheckResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := l.store.CheckStore()
	defer cache.Discard()
	return l.handler.Check(l.context(), cache, tx)
}

// Deliver executes the transaction and commits the result. A failed
// transaction leaves the state unchanged.
func (l *Ledger) Deliver(tx *Tx) (*bridge.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deliver(tx)
}

// DeliverRaw decodes and delivers a serialized transaction.
func (l *Ledger) DeliverRaw(raw []byte) (*bridge.DeliverResult, error) {
	tx, err := DecodeTx(raw)
	if err != nil {
		return nil, err
	}
	return l.Deliver(tx)
}

// Submit signs the message with given key, using the next nonce of the key,
// and delivers it.
func (l *Ledger) Submit(signer crypto.Signer, msg bridge.Msg) (*bridge.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := NewTx(msg)
	if err != nil {
		return nil, err
	}
	seq, err := sigs.NextNonce(l.store.DeliverStore(), signer.PublicKey().Address())
	if err != nil {
		return nil, err
	}
	if err := tx.Sign(signer, l.chainID, seq); err != nil {
		return nil, err
	}
	return l.deliver(tx)
}

func (l *Ledger) deliver(tx *Tx) (*bridge.DeliverResult, error) {
	cache := l.store.DeliverStore().CacheWrap()
	res, err := l.handler.Deliver(l.context(), cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := l.commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *Ledger) commit() error {
	info, err := l.store.Commit()
	if err != nil {
		return err
	}
	l.height = info.Version
	return nil
}

// View gives read only access to the committed state.
func (l *Ledger) View(fn func(db bridge.ReadOnlyKVStore) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.store.DeliverStore())
}

// Querier returns the lock-box accessors. Use them inside View.
func (l *Ledger) Querier() lockbox.Querier {
	return l.querier
}

// Cash returns the controller of the asset ledger. Use it inside View.
func (l *Ledger) Cash() cash.Controller {
	return l.cash
}

// NextNonce returns the sequence the next transaction signed by given
// address must use.
func (l *Ledger) NextNonce(addr bridge.Address) (int64, error) {
	var seq int64
	err := l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		seq, err = sigs.NextNonce(db, addr)
		return err
	})
	return seq, err
}

// context returns the execution context of the next block.
func (l *Ledger) context() bridge.Context {
	ctx := context.Background()
	ctx = bridge.WithChainID(ctx, l.chainID)
	ctx = bridge.WithHeight(ctx, l.height+1)
	ctx = bridge.WithBlockTime(ctx, l.clock().UTC())
	return bridge.WithLogger(ctx, l.logger.With("chain", l.chainID))
}
