package relayer

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/bridgetest/assert"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/crypto"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/ledger"
	"github.com/iov-one/bridge/store/iavl"
	"github.com/iov-one/bridge/x/lockbox"
	"github.com/stretchr/testify/require"
)

var meta = &bridge.Metadata{Schema: 1}

// side is one ledger of the bridge together with its operators.
type side struct {
	l       *ledger.Ledger
	asset   bridge.HexBytes
	owner   *crypto.PrivateKey
	manager *crypto.PrivateKey
}

func newSide(t testing.TB, chainID string, clock func() time.Time, funded ...bridge.Address) *side {
	t.Helper()
	s := &side{
		asset:   lockbox.AssetID(chainID, "ETH"),
		owner:   crypto.GenPrivKeyEd25519(),
		manager: crypto.GenPrivKeyEd25519(),
	}
	owner := s.owner.PublicKey().Address()

	accounts := fmt.Sprintf(`{"address": "%s", "coins": [{"ticker": "ETH", "amount": "100000"}]}`, owner)
	for _, a := range funded {
		accounts += fmt.Sprintf(`, {"address": "%s", "coins": [{"ticker": "ETH", "amount": "5000"}]}`, a)
	}
	raw := fmt.Sprintf(`{
		"cash": [%s],
		"conf": {
			"lockbox": {
				"metadata": {"schema": 1},
				"owner": "%s",
				"fee_beneficiary": "%s",
				"active": true,
				"default_asset": "%s",
				"deposit_time_lock": "2h",
				"withdraw_time_lock": "1h"
			}
		},
		"lockbox": {
			"managers": ["%s"],
			"assets": [{"asset_id": "%s", "ticker": "ETH"}],
			"liquidity": [{"asset_id": "%s", "payer": "%s", "provider": "%s", "amount": "50000"}]
		}
	}`, accounts, owner, owner, s.asset, s.manager.PublicKey().Address(), s.asset, s.asset, owner, owner)
	var opts bridge.Options
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))

	l, err := ledger.New(chainID, iavl.NewMemCommitStore(), ledger.WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, l.Genesis(opts))
	s.l = l
	return s
}

func (s *side) withdraw(t testing.TB, id []byte) *lockbox.LockBox {
	t.Helper()
	var box *lockbox.LockBox
	require.NoError(t, s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		box, err = s.l.Querier().CheckWithdraw(db, id)
		return err
	}))
	return box
}

func (s *side) deposit(t testing.TB, id []byte) *lockbox.LockBox {
	t.Helper()
	var box *lockbox.LockBox
	require.NoError(t, s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		box, err = s.l.Querier().CheckDeposit(db, id)
		return err
	}))
	return box
}

func (s *side) reserved(t testing.TB) coin.Amount {
	t.Helper()
	var amount coin.Amount
	require.NoError(t, s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		amount, err = s.l.Querier().Reserved(db, s.asset)
		return err
	}))
	return amount
}

func (s *side) balance(t testing.TB, a bridge.Address) coin.Amount {
	t.Helper()
	var amount coin.Amount
	require.NoError(t, s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		amount, err = s.l.Cash().Balance(db, a, "ETH")
		return err
	}))
	return amount
}

type bridgeEnv struct {
	clock *time.Time
	a, b  *side
	r     *Relayer
	alice *crypto.PrivateKey
	bob   *crypto.PrivateKey
}

func newBridgeEnv(t testing.TB) *bridgeEnv {
	t.Helper()
	now := time.Date(2021, time.March, 1, 12, 0, 0, 0, time.UTC)
	env := &bridgeEnv{
		clock: &now,
		alice: crypto.GenPrivKeyEd25519(),
		bob:   crypto.GenPrivKeyEd25519(),
	}
	clock := func() time.Time { return *env.clock }
	env.a = newSide(t, "bridge-a", clock, env.alice.PublicKey().Address())
	env.b = newSide(t, "bridge-b", clock)
	env.r = New(env.a.l, env.a.manager, env.b.l, env.b.manager)
	env.r.MapAsset(env.a.asset, env.b.asset)
	return env
}

// deposit opens a deposit of alice on ledger a, payable to bob on ledger b.
func (env *bridgeEnv) deposit(t testing.TB, amount, swapFee, txFee uint64) (id, secret bridge.HexBytes) {
	t.Helper()
	id, err := lockbox.NewLockBoxID(*env.clock, rand.Reader)
	require.NoError(t, err)
	secret, lockHash, err := lockbox.NewSecret(rand.Reader)
	require.NoError(t, err)

	_, err = env.a.l.Submit(env.alice, &lockbox.OpenDepositMsg{
		Metadata: meta,
		ID:       id,
		Amount:   coin.NewAmount(amount),
		SwapFee:  coin.NewAmount(swapFee),
		TxFee:    coin.NewAmount(txFee),
		Sender:   env.alice.PublicKey().Address(),
		Receiver: env.bob.PublicKey().Address(),
		LockHash: lockHash,
	})
	require.NoError(t, err)
	return id, secret
}

func TestSwapAcrossLedgers(t *testing.T) {
	env := newBridgeEnv(t)
	id, secret := env.deposit(t, 1000, 10, 5)

	assert.Nil(t, env.r.RelayDeposit(id))
	withdraw := env.b.withdraw(t, id)
	assert.Equal(t, lockbox.Open, withdraw.State)
	assert.Equal(t, env.b.asset, withdraw.AssetID)
	assert.Equal(t, env.a.deposit(t, id).LockHash, withdraw.LockHash)
	assert.Amount(t, 1000, env.b.reserved(t))

	// Nothing to relay back until the receiver reveals the secret.
	assert.IsErr(t, lockbox.ErrNotRevealed, env.r.RelaySecret(id))

	_, err := env.b.l.Submit(env.bob, &lockbox.CloseWithdrawMsg{
		Metadata: meta,
		ID:       id,
		Secret:   secret,
	})
	require.NoError(t, err)
	assert.Amount(t, 985, env.b.balance(t, env.bob.PublicKey().Address()))
	assert.Amount(t, 0, env.b.reserved(t))

	assert.Nil(t, env.r.RelaySecret(id))
	deposit := env.a.deposit(t, id)
	assert.Equal(t, lockbox.Closed, deposit.State)
	assert.Equal(t, secret, deposit.Secret)

	// A closed deposit is never relayed again.
	assert.IsErr(t, errors.ErrState, env.r.RelayDeposit(id))
	assert.IsErr(t, lockbox.ErrAlreadyClosed, env.r.RelaySecret(id))
}

func TestRelayDepositOnlyOnce(t *testing.T) {
	env := newBridgeEnv(t)
	id, _ := env.deposit(t, 1000, 0, 0)

	assert.Nil(t, env.r.RelayDeposit(id))
	assert.IsErr(t, errors.ErrDuplicate, env.r.RelayDeposit(id))
	assert.Amount(t, 1000, env.b.reserved(t))
}

func TestRelayUnknownDeposit(t *testing.T) {
	env := newBridgeEnv(t)
	id, err := lockbox.NewLockBoxID(*env.clock, rand.Reader)
	require.NoError(t, err)
	assert.IsErr(t, errors.ErrNotFound, env.r.RelayDeposit(id))
	assert.IsErr(t, errors.ErrNotFound, env.r.RelaySecret(id))
}

func TestExpireUnclaimedWithdraw(t *testing.T) {
	env := newBridgeEnv(t)
	id, _ := env.deposit(t, 1000, 0, 0)
	assert.Nil(t, env.r.RelayDeposit(id))

	assert.IsErr(t, lockbox.ErrNotYetExpired, env.r.ExpireWithdraw(id))

	*env.clock = env.clock.Add(time.Hour)
	assert.Nil(t, env.r.ExpireWithdraw(id))
	assert.Equal(t, lockbox.Expired, env.b.withdraw(t, id).State)
	assert.Amount(t, 0, env.b.reserved(t))
}
