package lockbox

import (
	"testing"
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/app"
	"github.com/iov-one/bridge/bridgetest"
	"github.com/iov-one/bridge/bridgetest/assert"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/x"
	"github.com/stretchr/testify/require"
)

func TestOpenDeposit(t *testing.T) {
	cases := map[string]struct {
		prepare   func(f *fixture)
		msg       func(f *fixture) *OpenDepositMsg
		signer    func(f *fixture) bridge.Condition
		wantErr   *errors.Error
		wantAlice uint64
	}{
		"deposit escrowed": {
			msg:       func(f *fixture) *OpenDepositMsg { return f.openDepositMsg(boxID(1), 1000, 10, 20) },
			wantAlice: 999000,
		},
		"default asset is used": {
			msg: func(f *fixture) *OpenDepositMsg {
				msg := f.openDepositMsg(boxID(1), 1000, 0, 0)
				msg.AssetID = nil
				return msg
			},
			wantAlice: 999000,
		},
		"not signed by the depositor": {
			msg:       func(f *fixture) *OpenDepositMsg { return f.openDepositMsg(boxID(1), 1000, 0, 0) },
			signer:    func(f *fixture) bridge.Condition { return f.bob },
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 1000000,
		},
		"fees exceed the amount": {
			msg:       func(f *fixture) *OpenDepositMsg { return f.openDepositMsg(boxID(1), 100, 60, 41) },
			wantErr:   ErrFeeExceedsAmount,
			wantAlice: 1000000,
		},
		"unknown asset": {
			msg: func(f *fixture) *OpenDepositMsg {
				msg := f.openDepositMsg(boxID(1), 1000, 0, 0)
				msg.AssetID = AssetID("test-bridge", "BTC")
				return msg
			},
			wantErr:   errors.ErrNotFound,
			wantAlice: 1000000,
		},
		"depositor too poor": {
			msg:       func(f *fixture) *OpenDepositMsg { return f.openDepositMsg(boxID(1), 2000000, 0, 0) },
			wantErr:   ErrTransferFailed,
			wantAlice: 1000000,
		},
		"duplicated id": {
			prepare: func(f *fixture) {
				f.mustDeliver(now, f.openDepositMsg(boxID(1), 10, 0, 0), f.alice)
			},
			msg:       func(f *fixture) *OpenDepositMsg { return f.openDepositMsg(boxID(1), 1000, 0, 0) },
			wantErr:   errors.ErrDuplicate,
			wantAlice: 999990,
		},
		"bridge paused": {
			prepare: func(f *fixture) {
				f.mustDeliver(now, &SetActiveMsg{Metadata: meta, Active: false}, f.manager)
			},
			msg:       func(f *fixture) *OpenDepositMsg { return f.openDepositMsg(boxID(1), 1000, 0, 0) },
			wantErr:   ErrInactive,
			wantAlice: 1000000,
		},
		"daily limit exceeded": {
			prepare: func(f *fixture) {
				f.mustDeliver(now, &SetSwapLimitMsg{
					Metadata: meta,
					AssetID:  assetID,
					Enabled:  true,
					DailyCap: coin.NewAmount(999),
				}, f.manager)
			},
			msg:       func(f *fixture) *OpenDepositMsg { return f.openDepositMsg(boxID(1), 1000, 0, 0) },
			wantErr:   ErrDailyLimitExceeded,
			wantAlice: 1000000,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, true)
			if tc.prepare != nil {
				tc.prepare(f)
			}
			signer := f.alice
			if tc.signer != nil {
				signer = tc.signer(f)
			}
			msg := tc.msg(f)

			res, err := f.deliver(now, msg, signer)
			assert.IsErr(t, tc.wantErr, err)
			assert.Amount(t, tc.wantAlice, f.held(f.alice.Address()))
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, []byte(msg.ID), res.Data)
			assert.Amount(t, 1000, f.held(EscrowAddress(msg.ID)))

			box, err := f.q.CheckDeposit(f.db, msg.ID)
			assert.Nil(t, err)
			assert.Equal(t, Open, box.State)
			assert.Equal(t, bridge.AsUnixTime(now), box.CreatedAt)
			assert.Equal(t, []byte(assetID), []byte(box.AssetID))
		})
	}
}

func TestCheckDepositNotFound(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.q.CheckDeposit(f.db, boxID(9))
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = f.q.CheckWithdraw(f.db, boxID(9))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestFeeSplitOnCloseWithdraw(t *testing.T) {
	f := newFixture(t, true)
	f.fund(20000)

	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 10200, 100, 200), f.manager)
	assert.Amount(t, 10200, f.reserved())
	assert.Amount(t, 9800, f.free())

	// Anybody can close a withdraw knowing the secret.
	f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})

	assert.Amount(t, 9900, f.held(f.bob.Address()))
	assert.Amount(t, 300, f.liquidity(f.beneficiary))
	assert.Amount(t, 0, f.reserved())
	assert.Amount(t, 10100, f.held(PoolAddress(assetID)))
	assert.Amount(t, 10100, f.free())

	revealed, err := f.q.CheckSecretKeyWithdraw(f.db, boxID(1))
	assert.Nil(t, err)
	assert.Equal(t, []byte(secret(1)), []byte(revealed))
}

func TestFeeStaysInPoolWhenNotCollected(t *testing.T) {
	f := newFixture(t, false)
	f.fund(20000)

	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 10200, 100, 200), f.manager)
	f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})

	assert.Amount(t, 9900, f.held(f.bob.Address()))
	assert.Amount(t, 0, f.liquidity(f.beneficiary))
	assert.Amount(t, 10100, f.held(PoolAddress(assetID)))
}

func TestCloseWithdrawWholeAmountAsFee(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)

	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 300, 100, 200), f.manager)
	f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})

	assert.Amount(t, 0, f.held(f.bob.Address()))
	assert.Amount(t, 300, f.liquidity(f.beneficiary))
	assert.Amount(t, 1000, f.held(PoolAddress(assetID)))
}

func TestCloseDeposit(t *testing.T) {
	cases := map[string]struct {
		collectFeeHere bool
		wantOwner      uint64
		wantFee        uint64
	}{
		"fees collected here": {
			collectFeeHere: true,
			wantOwner:      700,
			wantFee:        300,
		},
		"fees collected on the other ledger": {
			collectFeeHere: false,
			wantOwner:      1000,
			wantFee:        0,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, tc.collectFeeHere)
			f.mustDeliver(now, f.openDepositMsg(boxID(1), 1000, 100, 200), f.alice)

			// Only a manager can close a deposit.
			_, err := f.deliver(now, &CloseDepositMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)}, f.alice)
			assert.IsErr(t, errors.ErrUnauthorized, err)

			f.mustDeliver(now, &CloseDepositMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)}, f.manager)

			assert.Amount(t, 0, f.held(EscrowAddress(boxID(1))))
			assert.Amount(t, 1000, f.held(PoolAddress(assetID)))
			assert.Amount(t, tc.wantOwner, f.liquidity(f.owner))
			assert.Amount(t, tc.wantFee, f.liquidity(f.beneficiary))

			swapped, err := f.q.GetTodaySwappedAmount(f.db, assetID)
			assert.Nil(t, err)
			assert.Amount(t, 1000, swapped)

			revealed, err := f.q.CheckSecretKeyDeposit(f.db, boxID(1))
			assert.Nil(t, err)
			assert.Equal(t, []byte(secret(1)), []byte(revealed))
		})
	}
}

func TestSecretGating(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)
	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 100, 0, 0), f.manager)
	f.mustDeliver(now, f.openDepositMsg(boxID(2), 100, 0, 0), f.alice)

	_, err := f.q.CheckSecretKeyWithdraw(f.db, boxID(1))
	assert.IsErr(t, ErrNotRevealed, err)
	_, err = f.q.CheckSecretKeyDeposit(f.db, boxID(2))
	assert.IsErr(t, ErrNotRevealed, err)

	_, err = f.deliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(2)})
	assert.IsErr(t, ErrBadSecret, err)
	_, err = f.deliver(now, &CloseDepositMsg{Metadata: meta, ID: boxID(2), Secret: secret(1)}, f.manager)
	assert.IsErr(t, ErrBadSecret, err)
	_, err = f.deliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(3), Secret: secret(3)})
	assert.IsErr(t, errors.ErrNotFound, err)

	// Failed attempts leave no trace.
	assert.Amount(t, 100, f.reserved())
	assert.Amount(t, 0, f.held(f.bob.Address()))
}

func TestStateTransitionsAreExclusive(t *testing.T) {
	later := now.Add(2 * time.Hour)

	t.Run("closed withdraw cannot expire", func(t *testing.T) {
		f := newFixture(t, true)
		f.fund(1000)
		f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 100, 0, 0), f.manager)
		f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})

		_, err := f.deliver(later, &ExpireWithdrawMsg{Metadata: meta, ID: boxID(1)}, f.manager)
		assert.IsErr(t, ErrAlreadyClosed, err)
		_, err = f.deliver(later, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})
		assert.IsErr(t, ErrAlreadyClosed, err)
		assert.Amount(t, 100, f.held(f.bob.Address()))
	})

	t.Run("expired withdraw cannot close", func(t *testing.T) {
		f := newFixture(t, true)
		f.fund(1000)
		f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 100, 0, 0), f.manager)
		f.mustDeliver(later, &ExpireWithdrawMsg{Metadata: meta, ID: boxID(1)}, f.manager)
		assert.Amount(t, 0, f.reserved())

		_, err := f.deliver(later, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})
		assert.IsErr(t, ErrAlreadyExpired, err)
		_, err = f.deliver(later, &ExpireWithdrawMsg{Metadata: meta, ID: boxID(1)}, f.manager)
		assert.IsErr(t, ErrAlreadyExpired, err)
	})

	t.Run("closed deposit cannot expire", func(t *testing.T) {
		f := newFixture(t, true)
		f.mustDeliver(now, f.openDepositMsg(boxID(1), 100, 0, 0), f.alice)
		f.mustDeliver(now, &CloseDepositMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)}, f.manager)

		_, err := f.deliver(now.Add(3*time.Hour), &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.alice)
		assert.IsErr(t, ErrAlreadyClosed, err)
	})

	t.Run("expired deposit cannot close", func(t *testing.T) {
		f := newFixture(t, true)
		f.mustDeliver(now, f.openDepositMsg(boxID(1), 100, 0, 0), f.alice)
		f.mustDeliver(now.Add(3*time.Hour), &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.alice)

		_, err := f.deliver(now, &CloseDepositMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)}, f.manager)
		assert.IsErr(t, ErrAlreadyExpired, err)
	})

	t.Run("ids stay taken in any state", func(t *testing.T) {
		f := newFixture(t, true)
		f.mustDeliver(now, f.openDepositMsg(boxID(1), 100, 0, 0), f.alice)
		f.mustDeliver(now.Add(3*time.Hour), &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.alice)

		_, err := f.deliver(now, f.openDepositMsg(boxID(1), 100, 0, 0), f.alice)
		assert.IsErr(t, errors.ErrDuplicate, err)
	})
}

func TestExpireDepositBoundary(t *testing.T) {
	f := newFixture(t, true)
	f.mustDeliver(now, f.openDepositMsg(boxID(1), 1000, 0, 0), f.alice)
	assert.Amount(t, 999000, f.held(f.alice.Address()))

	_, err := f.deliver(now.Add(7199*time.Second), &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.alice)
	assert.IsErr(t, ErrNotYetExpired, err)

	_, err = f.deliver(now.Add(7200*time.Second), &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	f.mustDeliver(now.Add(7200*time.Second), &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.alice)
	assert.Amount(t, 1000000, f.held(f.alice.Address()))
	assert.Amount(t, 0, f.held(EscrowAddress(boxID(1))))

	box, err := f.q.CheckDeposit(f.db, boxID(1))
	assert.Nil(t, err)
	assert.Equal(t, Expired, box.State)
}

func TestExpireWithdrawBoundary(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)
	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 400, 0, 0), f.manager)

	_, err := f.deliver(now.Add(3599*time.Second), &ExpireWithdrawMsg{Metadata: meta, ID: boxID(1)}, f.manager)
	assert.IsErr(t, ErrNotYetExpired, err)
	_, err = f.deliver(now.Add(3600*time.Second), &ExpireWithdrawMsg{Metadata: meta, ID: boxID(1)}, f.alice)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	f.mustDeliver(now.Add(3600*time.Second), &ExpireWithdrawMsg{Metadata: meta, ID: boxID(1)}, f.manager)
	assert.Amount(t, 0, f.reserved())
	assert.Amount(t, 1000, f.free())
}

func TestTimeLockChangeAppliesToOpenBoxes(t *testing.T) {
	f := newFixture(t, true)
	f.mustDeliver(now, f.openDepositMsg(boxID(1), 1000, 0, 0), f.alice)

	_, err := f.deliver(now, &ChangeTimeLockMsg{Metadata: meta, WithdrawSeconds: 60}, f.alice)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, &ChangeTimeLockMsg{Metadata: meta, WithdrawSeconds: 60}, f.manager)

	conf, err := f.q.Configuration(f.db)
	assert.Nil(t, err)
	assert.Equal(t, bridge.Seconds(60), conf.WithdrawTimeLock)
	assert.Equal(t, bridge.Seconds(120), conf.DepositTimeLock)

	_, err = f.deliver(now.Add(119*time.Second), &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.alice)
	assert.IsErr(t, ErrNotYetExpired, err)
	f.mustDeliver(now.Add(120*time.Second), &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.alice)
}

// Liquidity balances are nominal claims. Free liquidity, the pool holdings
// minus what open withdraws reserve, never goes negative, but after a
// withdraw is paid the claims exceed the pool.
func TestPledgedLiquidityIsNotFree(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)

	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 800, 0, 0), f.manager)
	assert.Amount(t, 200, f.free())

	_, err := f.deliver(now, f.openWithdrawMsg(boxID(2), 201, 0, 0), f.manager)
	assert.IsErr(t, ErrInsufficientLiquidity, err)

	// The owner has a nominal claim of 1000 but only 200 is free.
	decrease := func(amount uint64) *DecreaseLiquidityMsg {
		return &DecreaseLiquidityMsg{
			Metadata: meta,
			AssetID:  assetID,
			Provider: f.owner.Address(),
			Amount:   coin.NewAmount(amount),
		}
	}
	_, err = f.deliver(now, decrease(300), f.owner)
	assert.IsErr(t, ErrInsufficientLiquidity, err)
	f.mustDeliver(now, decrease(200), f.owner)

	assert.Amount(t, 0, f.free())
	assert.Amount(t, 800, f.liquidity(f.owner))
	assert.Amount(t, 800, f.held(PoolAddress(assetID)))
	assert.Amount(t, 999200, f.held(f.owner.Address()))

	// The pledged withdraw can still be paid out.
	f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})
	assert.Amount(t, 800, f.held(f.bob.Address()))
	assert.Amount(t, 0, f.held(PoolAddress(assetID)))
	assert.Amount(t, 0, f.free())
	assert.Amount(t, 800, f.liquidity(f.owner))
}

// failingPort accepts funds but every payout fails.
type failingPort struct {
	CashPort
}

func (failingPort) TransferOut(bridge.KVStore, string, bridge.Address, bridge.Address, coin.Amount) error {
	return errors.Wrap(ErrTransferFailed, "custody offline")
}

func TestFailedPayoutLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)
	f.mustDeliver(now, &SetSwapLimitMsg{Metadata: meta, AssetID: assetID, Enabled: true, DailyCap: coin.NewAmount(5000)}, f.manager)
	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 100, 10, 5), f.manager)
	f.mustDeliver(now, f.openDepositMsg(boxID(2), 200, 10, 5), f.alice)

	// No cache in between, the handler itself must not write before the
	// transfer.
	broken := app.NewRouter()
	RegisterRoutes(broken, x.ChainAuth(f.auth), failingPort{CashPort: NewCashPort(f.ctrl)})

	cases := map[string]struct {
		msg    bridge.Msg
		signer bridge.Condition
		state  func() (*LockBox, error)
	}{
		"close withdraw": {
			msg:   &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)},
			state: func() (*LockBox, error) { return f.q.CheckWithdraw(f.db, boxID(1)) },
		},
		"close deposit": {
			msg:    &CloseDepositMsg{Metadata: meta, ID: boxID(2), Secret: secret(2)},
			signer: f.manager,
			state:  func() (*LockBox, error) { return f.q.CheckDeposit(f.db, boxID(2)) },
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var signers []bridge.Condition
			if tc.signer != nil {
				signers = append(signers, tc.signer)
			}
			ctx := f.auth.SetConditions(bridgetest.Ctx(now), signers...)

			_, err := broken.Deliver(ctx, f.db, &bridgetest.Tx{Msg: tc.msg})
			assert.IsErr(t, ErrTransferFailed, err)

			box, err := tc.state()
			require.NoError(t, err)
			assert.Equal(t, Open, box.State)
			assert.Equal(t, 0, len(box.Secret))

			swapped, err := f.q.GetTodaySwappedAmount(f.db, assetID)
			require.NoError(t, err)
			assert.Amount(t, 0, swapped)
			assert.Amount(t, 100, f.reserved())
			assert.Amount(t, 1000, f.liquidity(f.owner))
			assert.Amount(t, 0, f.liquidity(f.beneficiary))
			assert.Amount(t, 1000, f.held(PoolAddress(assetID)))
			assert.Amount(t, 200, f.held(EscrowAddress(boxID(2))))
			assert.Amount(t, 0, f.held(f.bob.Address()))
		})
	}
}

func TestDecreaseLiquidityNominal(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)

	// Alice never provided liquidity, although the pool has plenty.
	_, err := f.deliver(now, &DecreaseLiquidityMsg{
		Metadata: meta,
		AssetID:  assetID,
		Provider: f.alice.Address(),
		Amount:   coin.NewAmount(1),
	}, f.alice)
	assert.IsErr(t, ErrInsufficientLiquidity, err)

	// Only the provider can withdraw its liquidity.
	_, err = f.deliver(now, &DecreaseLiquidityMsg{
		Metadata: meta,
		AssetID:  assetID,
		Provider: f.owner.Address(),
		Amount:   coin.NewAmount(1),
	}, f.alice)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestIncreaseLiquidityForAnotherProvider(t *testing.T) {
	f := newFixture(t, true)
	f.mustDeliver(now, &IncreaseLiquidityMsg{
		Metadata: meta,
		Payer:    f.alice.Address(),
		Provider: f.bob.Address(),
		Amount:   coin.NewAmount(500),
	}, f.alice)

	assert.Amount(t, 500, f.liquidity(f.bob))
	assert.Amount(t, 0, f.liquidity(f.alice))
	assert.Amount(t, 999500, f.held(f.alice.Address()))
	assert.Amount(t, 500, f.held(PoolAddress(assetID)))
}

func TestCircuitBreaker(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)
	f.mustDeliver(now, f.openDepositMsg(boxID(1), 100, 0, 0), f.alice)
	f.mustDeliver(now, f.openWithdrawMsg(boxID(2), 100, 0, 0), f.manager)

	_, err := f.deliver(now, &SetActiveMsg{Metadata: meta, Active: false}, f.owner)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, &SetActiveMsg{Metadata: meta, Active: false}, f.manager)

	active, err := f.q.GetActive(f.db)
	assert.Nil(t, err)
	assert.Equal(t, false, active)

	paused := map[string]struct {
		msg    bridge.Msg
		signer bridge.Condition
	}{
		"open deposit":       {msg: f.openDepositMsg(boxID(3), 100, 0, 0), signer: f.alice},
		"open withdraw":      {msg: f.openWithdrawMsg(boxID(4), 100, 0, 0), signer: f.manager},
		"close deposit":      {msg: &CloseDepositMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)}, signer: f.manager},
		"close withdraw":     {msg: &CloseWithdrawMsg{Metadata: meta, ID: boxID(2), Secret: secret(2)}, signer: f.bob},
		"increase liquidity": {msg: &IncreaseLiquidityMsg{Metadata: meta, Payer: f.alice.Address(), Provider: f.alice.Address(), Amount: coin.NewAmount(1)}, signer: f.alice},
		"decrease liquidity": {msg: &DecreaseLiquidityMsg{Metadata: meta, Provider: f.owner.Address(), Amount: coin.NewAmount(1)}, signer: f.owner},
	}
	for name, tc := range paused {
		t.Run(name, func(t *testing.T) {
			_, err := f.deliver(now, tc.msg, tc.signer)
			assert.IsErr(t, ErrInactive, err)
		})
	}

	// Refunds are possible while paused.
	later := now.Add(3 * time.Hour)
	f.mustDeliver(later, &ExpireDepositMsg{Metadata: meta, ID: boxID(1)}, f.alice)
	f.mustDeliver(later, &ExpireWithdrawMsg{Metadata: meta, ID: boxID(2)}, f.manager)

	f.mustDeliver(now, &SetActiveMsg{Metadata: meta, Active: true}, f.manager)
	f.mustDeliver(now, f.openDepositMsg(boxID(3), 100, 0, 0), f.alice)
}

func TestDailySwapLimit(t *testing.T) {
	f := newFixture(t, true)
	f.fund(10000)

	f.mustDeliver(now, f.openDepositMsg(boxID(1), 100, 0, 0), f.alice)
	f.mustDeliver(now, &CloseDepositMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)}, f.manager)

	swapped, err := f.q.GetTodaySwappedAmount(f.db, assetID)
	assert.Nil(t, err)
	assert.Amount(t, 100, swapped)

	_, err = f.deliver(now, &SetSwapLimitMsg{Metadata: meta, AssetID: assetID, Enabled: true, DailyCap: coin.NewAmount(500)}, f.alice)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, &SetSwapLimitMsg{Metadata: meta, AssetID: assetID, Enabled: true, DailyCap: coin.NewAmount(500)}, f.manager)

	for i, wantSwappable := range []uint64{300, 200, 100, 0} {
		id := boxID(byte(10 + i))
		f.mustDeliver(now, f.openWithdrawMsg(id, 100, 0, 0), f.manager)
		f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: id, Secret: secret(id[0])})

		swappable, err := f.q.GetTodaySwappableAmount(f.db, assetID)
		assert.Nil(t, err)
		assert.Amount(t, wantSwappable, swappable)
	}

	_, err = f.deliver(now, f.openWithdrawMsg(boxID(20), 1, 0, 0), f.manager)
	assert.IsErr(t, ErrDailyLimitExceeded, err)
	_, err = f.deliver(now, f.openDepositMsg(boxID(21), 1, 0, 0), f.alice)
	assert.IsErr(t, ErrDailyLimitExceeded, err)

	swapped, err = f.q.GetTodaySwappedAmount(f.db, assetID)
	assert.Nil(t, err)
	assert.Amount(t, 500, swapped)

	_, err = f.deliver(now, &ResetTodaySwapAmountMsg{Metadata: meta, AssetID: assetID}, f.alice)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, &ResetTodaySwapAmountMsg{Metadata: meta, AssetID: assetID}, f.manager)

	f.mustDeliver(now, f.openWithdrawMsg(boxID(20), 100, 0, 0), f.manager)
	f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(20), Secret: secret(20)})
	swapped, err = f.q.GetTodaySwappedAmount(f.db, assetID)
	assert.Nil(t, err)
	assert.Amount(t, 100, swapped)
}

func TestCloseRefusedAboveDailyCap(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)

	// Both opens are admitted, but only one close fits the cap.
	f.mustDeliver(now, &SetSwapLimitMsg{Metadata: meta, AssetID: assetID, Enabled: true, DailyCap: coin.NewAmount(150)}, f.manager)
	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 100, 0, 0), f.manager)
	f.mustDeliver(now, f.openWithdrawMsg(boxID(2), 100, 0, 0), f.manager)
	f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})

	_, err := f.deliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(2), Secret: secret(2)})
	assert.IsErr(t, ErrDailyLimitExceeded, err)
	assert.Amount(t, 100, f.reserved())
}

func TestSetFeeBeneficiary(t *testing.T) {
	f := newFixture(t, true)
	f.fund(20000)
	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 10200, 100, 200), f.manager)
	f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(1), Secret: secret(1)})
	assert.Amount(t, 300, f.liquidity(f.beneficiary))

	next := f.bob
	_, err := f.deliver(now, &SetFeeBeneficiaryMsg{Metadata: meta, Beneficiary: next.Address()}, f.manager)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	f.mustDeliver(now, &SetFeeBeneficiaryMsg{Metadata: meta, Beneficiary: next.Address()}, f.owner)
	assert.Amount(t, 0, f.liquidity(f.beneficiary))
	assert.Amount(t, 300, f.liquidity(next))

	conf, err := f.q.Configuration(f.db)
	assert.Nil(t, err)
	assert.Equal(t, next.Address(), conf.FeeBeneficiary)

	// New fees are credited to the new beneficiary.
	f.mustDeliver(now, f.openWithdrawMsg(boxID(2), 1000, 50, 0), f.manager)
	f.mustDeliver(now, &CloseWithdrawMsg{Metadata: meta, ID: boxID(2), Secret: secret(2)})
	assert.Amount(t, 350, f.liquidity(next))
	assert.Amount(t, 0, f.liquidity(f.beneficiary))
}

func TestManagers(t *testing.T) {
	f := newFixture(t, true)
	carol := f.bob.Address()
	add := &AddManagerMsg{Metadata: meta, Manager: carol}

	_, err := f.deliver(now, add, f.manager)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, add, f.owner)
	_, err = f.deliver(now, add, f.owner)
	assert.IsErr(t, errors.ErrDuplicate, err)

	ok, err := f.q.IsManager(f.db, carol)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	// The owner is not a manager unless appointed.
	_, err = f.deliver(now, &SetActiveMsg{Metadata: meta, Active: false}, f.owner)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Only a manager can renounce, and only for itself.
	_, err = f.deliver(now, &RenounceManagerMsg{Metadata: meta, Manager: carol}, f.manager)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = f.deliver(now, &RenounceManagerMsg{Metadata: meta, Manager: f.alice.Address()}, f.alice)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, &RenounceManagerMsg{Metadata: meta, Manager: carol}, f.bob)

	ok, err = f.q.IsManager(f.db, carol)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	// The owner can remove the last manager.
	remove := &RemoveManagerMsg{Metadata: meta, Manager: f.manager.Address()}
	_, err = f.deliver(now, remove, f.manager)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, remove, f.owner)
	_, err = f.deliver(now, remove, f.owner)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = f.deliver(now, f.openWithdrawMsg(boxID(1), 1, 0, 0), f.manager)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestTransferOwnership(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.deliver(now, &TransferOwnershipMsg{Metadata: meta, NewOwner: f.alice.Address()}, f.manager)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, &TransferOwnershipMsg{Metadata: meta, NewOwner: f.alice.Address()}, f.owner)

	isOwner, err := f.q.IsOwner(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, true, isOwner)

	_, err = f.deliver(now, &AddManagerMsg{Metadata: meta, Manager: f.bob.Address()}, f.owner)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, &AddManagerMsg{Metadata: meta, Manager: f.bob.Address()}, f.alice)
}

func TestRegisterAsset(t *testing.T) {
	f := newFixture(t, true)
	btc := AssetID("test-bridge", "BTC")
	msg := &RegisterAssetMsg{Metadata: meta, AssetID: btc, Ticker: "BTC"}

	_, err := f.deliver(now, msg, f.owner)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	f.mustDeliver(now, msg, f.manager)
	_, err = f.deliver(now, msg, f.manager)
	assert.IsErr(t, errors.ErrDuplicate, err)

	asset, err := f.q.Asset(f.db, btc)
	assert.Nil(t, err)
	assert.Equal(t, "BTC", asset.Ticker)
	free, err := f.q.FreeLiquidity(f.db, btc)
	assert.Nil(t, err)
	assert.Amount(t, 0, free)

	// Deposits of the new asset move the BTC currency.
	assert.Nil(t, f.ctrl.IssueCoins(f.db, f.alice.Address(), coin.NewCoin(50, "BTC")))
	dep := f.openDepositMsg(boxID(1), 50, 0, 0)
	dep.AssetID = btc
	f.mustDeliver(now, dep, f.alice)

	held, err := f.ctrl.Balance(f.db, EscrowAddress(boxID(1)), "BTC")
	assert.Nil(t, err)
	assert.Amount(t, 50, held)
	assert.Amount(t, 1000000, f.held(f.alice.Address()))
}

func TestLockHashLookup(t *testing.T) {
	f := newFixture(t, true)
	f.fund(1000)
	f.mustDeliver(now, f.openDepositMsg(boxID(1), 100, 0, 0), f.alice)
	f.mustDeliver(now, f.openWithdrawMsg(boxID(1), 100, 0, 0), f.manager)

	lockHash := HashSecret(secret(1))
	ids, err := f.q.DepositsByLockHash(f.db, lockHash)
	require.NoError(t, err)
	require.Equal(t, [][]byte{boxID(1)}, ids)

	ids, err = f.q.WithdrawsByLockHash(f.db, lockHash)
	require.NoError(t, err)
	require.Equal(t, [][]byte{boxID(1)}, ids)

	ids, err = f.q.DepositsBySender(f.db, f.alice.Address())
	require.NoError(t, err)
	require.Len(t, ids, 1)

	ids, err = f.q.WithdrawsByReceiver(f.db, f.bob.Address())
	require.NoError(t, err)
	require.Len(t, ids, 1)

	ids, err = f.q.DepositsByLockHash(f.db, HashSecret(secret(2)))
	require.NoError(t, err)
	require.Empty(t, ids)
}
