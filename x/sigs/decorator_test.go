package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/bridgetest"
	"github.com/iov-one/bridge/crypto"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(sigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := bridge.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []bridge.Condition{priv.PublicKey().Condition()}

	tx := newStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec bridge.Decorator, my bridge.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec bridge.Decorator, my bridge.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(bridge.Decorator, bridge.Tx) error{check, deliver} {
		// no signatures
		tx.Signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d", i)

		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		require.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d", i)

		tx.Signatures = []*StdSignature{sig1}
		err = fn(d, tx)
		require.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// no signatures are fine when allowed
		tx.Signatures = nil
		err = fn(d.AllowMissingSigs(), tx)
		require.NoError(t, err, "%d", i)
		assert.Empty(t, signers.Signers)
	}
}

func TestDecoratorIgnoresUnsignedTx(t *testing.T) {
	kv := store.MemStore()
	h := new(sigCheckHandler)
	ctx := bridge.WithChainID(context.Background(), "unsigned-tx")

	tx := &bridgetest.Tx{Msg: &bridgetest.Msg{RoutePath: "test/unsigned"}}
	_, err := NewDecorator().Deliver(ctx, kv, tx, h)
	require.NoError(t, err)
	assert.Empty(t, h.Signers)
}

func TestAuthenticate(t *testing.T) {
	a := bridgetest.NewCondition()
	b := bridgetest.NewCondition()

	ctx := context.Background()
	auth := Authenticate{}
	assert.Empty(t, auth.GetConditions(ctx))
	assert.False(t, auth.HasAddress(ctx, a.Address()))

	ctx = withSigners(ctx, []bridge.Condition{a})
	assert.Equal(t, []bridge.Condition{a}, auth.GetConditions(ctx))
	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.False(t, auth.HasAddress(ctx, b.Address()))
}
