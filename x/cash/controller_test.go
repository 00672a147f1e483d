package cash

import (
	"testing"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/bridgetest"
	"github.com/iov-one/bridge/bridgetest/assert"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/store"
)

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	addr := bridgetest.NewCondition().Address()

	balance, err := ctrl.Balance(db, addr, "ETH")
	assert.Nil(t, err)
	assert.Amount(t, 0, balance)

	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(500, "ETH")))
	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(250, "ETH")))
	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(7, "BTC")))

	balance, err = ctrl.Balance(db, addr, "ETH")
	assert.Nil(t, err)
	assert.Amount(t, 750, balance)

	all, err := ctrl.Wallet(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(all))
	assert.Equal(t, "BTC", all[0].Ticker)

	err = ctrl.IssueCoins(db, addr, coin.NewCoin(1, "bad ticker"))
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestMoveCoins(t *testing.T) {
	alice := bridgetest.NewCondition().Address()
	bob := bridgetest.NewCondition().Address()

	cases := map[string]struct {
		src     bridge.Address
		dest    bridge.Address
		amount  coin.Coin
		wantErr *errors.Error
		// expected balances after the move
		wantSrc  uint64
		wantDest uint64
	}{
		"move part": {
			src:      alice,
			dest:     bob,
			amount:   coin.NewCoin(40, "ETH"),
			wantSrc:  60,
			wantDest: 40,
		},
		"move everything": {
			src:      alice,
			dest:     bob,
			amount:   coin.NewCoin(100, "ETH"),
			wantSrc:  0,
			wantDest: 100,
		},
		"move to self": {
			src:     alice,
			dest:    alice,
			amount:  coin.NewCoin(100, "ETH"),
			wantSrc: 100,
		},
		"insufficient funds": {
			src:     alice,
			dest:    bob,
			amount:  coin.NewCoin(101, "ETH"),
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 100,
		},
		"currency not held": {
			src:     alice,
			dest:    bob,
			amount:  coin.NewCoin(1, "BTC"),
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 100,
		},
		"empty source account": {
			src:      bob,
			dest:     alice,
			amount:   coin.NewCoin(1, "ETH"),
			wantErr:  errors.ErrInsufficientAmount,
			wantSrc:  0,
			wantDest: 100,
		},
		"zero amount": {
			src:     alice,
			dest:    bob,
			amount:  coin.NewCoin(0, "ETH"),
			wantErr: errors.ErrAmount,
			wantSrc: 100,
		},
		"invalid destination": {
			src:     alice,
			dest:    bridge.Address{0x01},
			amount:  coin.NewCoin(1, "ETH"),
			wantErr: errors.ErrInput,
			wantSrc: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(100, "ETH")))

			err := ctrl.MoveCoins(db, tc.src, tc.dest, tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			got, err := ctrl.Balance(db, tc.src, "ETH")
			assert.Nil(t, err)
			assert.Amount(t, tc.wantSrc, got)
			if !tc.src.Equals(tc.dest) && tc.dest.Validate() == nil {
				got, err = ctrl.Balance(db, tc.dest, "ETH")
				assert.Nil(t, err)
				assert.Amount(t, tc.wantDest, got)
			}
		})
	}
}

func TestEmptyWalletIsRemoved(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	ctrl := NewController(bucket)
	alice := bridgetest.NewCondition().Address()
	bob := bridgetest.NewCondition().Address()

	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(5, "ETH")))
	assert.Nil(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(5, "ETH")))

	err := bucket.Has(db, alice)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Nil(t, bucket.Has(db, bob))
}
