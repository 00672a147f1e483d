package lockbox

import (
	"bytes"
	"testing"
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/app"
	"github.com/iov-one/bridge/bridgetest"
	"github.com/iov-one/bridge/bridgetest/assert"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/store"
	"github.com/iov-one/bridge/x"
	"github.com/iov-one/bridge/x/cash"
)

const ticker = "ETH"

var (
	assetID = AssetID("test-bridge", ticker)
	now     = time.Date(2021, time.March, 1, 12, 0, 0, 0, time.UTC)
	meta    = &bridge.Metadata{Schema: 1}
)

// fixture is a single ledger running the lock-box extension on top of the
// cash extension. The manager is not the owner.
type fixture struct {
	t      testing.TB
	db     store.CacheableKVStore
	auth   *bridgetest.CtxAuth
	router *app.Router
	ctrl   cash.BaseController
	q      Querier

	owner       bridge.Condition
	manager     bridge.Condition
	beneficiary bridge.Condition
	alice       bridge.Condition
	bob         bridge.Condition
}

func newFixture(t testing.TB, collectFeeHere bool) *fixture {
	t.Helper()
	f := &fixture{
		t:           t,
		db:          store.MemStore(),
		auth:        &bridgetest.CtxAuth{Key: "auth"},
		router:      app.NewRouter(),
		ctrl:        cash.NewController(cash.NewBucket()),
		owner:       bridgetest.NewCondition(),
		manager:     bridgetest.NewCondition(),
		beneficiary: bridgetest.NewCondition(),
		alice:       bridgetest.NewCondition(),
		bob:         bridgetest.NewCondition(),
	}
	port := NewCashPort(f.ctrl)
	RegisterRoutes(f.router, x.ChainAuth(f.auth), port)
	f.q = NewQuerier(port)

	conf := Configuration{
		Metadata:         meta,
		Owner:            f.owner.Address(),
		FeeBeneficiary:   f.beneficiary.Address(),
		Active:           true,
		CollectFeeHere:   collectFeeHere,
		DefaultAsset:     assetID,
		DepositTimeLock:  7200,
		WithdrawTimeLock: 3600,
	}
	assert.Nil(t, SaveConfiguration(f.db, &conf))
	assert.Nil(t, newKeeper(port).registerAsset(f.db, assetID, ticker))
	m := Manager{Metadata: meta, Address: f.manager.Address()}
	assert.Nil(t, NewManagerBucket().Put(f.db, f.manager.Address(), &m))

	f.issue(f.alice, 1000000)
	f.issue(f.owner, 1000000)
	return f
}

func (f *fixture) issue(c bridge.Condition, amount uint64) {
	f.t.Helper()
	assert.Nil(f.t, f.ctrl.IssueCoins(f.db, c.Address(), coin.NewCoin(amount, ticker)))
}

// deliver runs the message through check and deliver. The store is
// modified only when both succeed.
func (f *fixture) deliver(at time.Time, msg bridge.Msg, signers ...bridge.Condition) (*bridge.DeliverResult, error) {
	ctx := f.auth.SetConditions(bridgetest.Ctx(at), signers...)
	tx := &bridgetest.Tx{Msg: msg}

	cache := f.db.CacheWrap()
	_, err := f.router.Check(ctx, cache, tx)
	cache.Discard()
	if err != nil {
		return nil, err
	}
	res, err := f.router.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	assert.Nil(f.t, cache.Write())
	return res, nil
}

// mustDeliver fails the test unless the message is delivered.
func (f *fixture) mustDeliver(at time.Time, msg bridge.Msg, signers ...bridge.Condition) {
	f.t.Helper()
	if _, err := f.deliver(at, msg, signers...); err != nil {
		f.t.Fatalf("deliver %s: %+v", msg.Path(), err)
	}
}

func (f *fixture) held(addr bridge.Address) coin.Amount {
	f.t.Helper()
	amount, err := f.ctrl.Balance(f.db, addr, ticker)
	assert.Nil(f.t, err)
	return amount
}

func (f *fixture) liquidity(c bridge.Condition) coin.Amount {
	f.t.Helper()
	amount, err := f.q.BalanceOfLiquidity(f.db, assetID, c.Address())
	assert.Nil(f.t, err)
	return amount
}

func (f *fixture) free() coin.Amount {
	f.t.Helper()
	amount, err := f.q.FreeLiquidity(f.db, assetID)
	assert.Nil(f.t, err)
	return amount
}

func (f *fixture) reserved() coin.Amount {
	f.t.Helper()
	amount, err := f.q.Reserved(f.db, assetID)
	assert.Nil(f.t, err)
	return amount
}

// fund provides pool liquidity paid by the owner.
func (f *fixture) fund(amount uint64) {
	f.t.Helper()
	f.mustDeliver(now, &IncreaseLiquidityMsg{
		Metadata: meta,
		AssetID:  assetID,
		Payer:    f.owner.Address(),
		Provider: f.owner.Address(),
		Amount:   coin.NewAmount(amount),
	}, f.owner)
}

func (f *fixture) openDepositMsg(id []byte, amount, swapFee, txFee uint64) *OpenDepositMsg {
	return &OpenDepositMsg{
		Metadata: meta,
		ID:       id,
		AssetID:  assetID,
		Amount:   coin.NewAmount(amount),
		SwapFee:  coin.NewAmount(swapFee),
		TxFee:    coin.NewAmount(txFee),
		Sender:   f.alice.Address(),
		Receiver: f.bob.Address(),
		LockHash: HashSecret(secret(id[0])),
	}
}

func (f *fixture) openWithdrawMsg(id []byte, amount, swapFee, txFee uint64) *OpenWithdrawMsg {
	return &OpenWithdrawMsg{
		Metadata: meta,
		ID:       id,
		AssetID:  assetID,
		Amount:   coin.NewAmount(amount),
		SwapFee:  coin.NewAmount(swapFee),
		TxFee:    coin.NewAmount(txFee),
		Sender:   f.alice.Address(),
		Receiver: f.bob.Address(),
		LockHash: HashSecret(secret(id[0])),
	}
}

// boxID returns a lock-box id. The secret of the box is secret(n).
func boxID(n byte) bridge.HexBytes {
	return bytes.Repeat([]byte{n}, IDSize)
}

func secret(n byte) bridge.HexBytes {
	return bytes.Repeat([]byte{n, 0xAA}, SecretSize/2)
}
