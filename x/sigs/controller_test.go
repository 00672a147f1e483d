package sigs

import (
	"testing"

	"github.com/iov-one/bridge/crypto"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	bz2 := []byte("blast")

	chainID := "test-sign-bytes"
	c1, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.Len(t, c1, 64)
	assert.NotEqual(t, bz, c1)

	tx := newStdTx(bz)
	raw, err := tx.GetSignBytes()
	require.NoError(t, err)
	c1a, err := BuildSignBytes(raw, chainID, 17)
	require.NoError(t, err)
	c1b, err := BuildSignBytesTx(tx, chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, c1a, c1b)

	// sign bytes change on tx, chain_id and seq
	ct, err := BuildSignBytes(bz2, chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2", 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
	c3, err := BuildSignBytes(bz, chainID, 18)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)

	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(bz, "no", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	addr := priv.PublicKey().Address()
	chainID := "emo-music-2345"

	bz := []byte("my special valentine")
	tx := newStdTx(bz)
	signBytes, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), sig1.Sequence)

	cases := map[string]struct {
		sig     *StdSignature
		chainID string
		wantErr *errors.Error
	}{
		"wrong chain": {
			sig:     sig0,
			chainID: "foobar",
			wantErr: errors.ErrUnauthorized,
		},
		"empty signature": {
			sig:     &StdSignature{Pubkey: priv.PublicKey()},
			chainID: chainID,
			wantErr: errors.ErrUnauthorized,
		},
		"missing public key": {
			sig:     &StdSignature{Signature: sig0.Signature},
			chainID: chainID,
			wantErr: errors.ErrUnauthorized,
		},
		"sequence from the future": {
			sig:     sig1,
			chainID: chainID,
			wantErr: ErrInvalidSequence,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := VerifySignature(kv, tc.sig, signBytes, tc.chainID)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}

	// failed attempts do not touch the nonce
	nonce, err := NextNonce(kv, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(0), nonce)

	cond, err := VerifySignature(kv, sig0, signBytes, chainID)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey().Condition(), cond)

	// replay is rejected
	_, err = VerifySignature(kv, sig0, signBytes, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	cond, err = VerifySignature(kv, sig1, signBytes, chainID)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey().Condition(), cond)

	nonce, err = NextNonce(kv, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(2), nonce)
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()
	chainID := "tx-sigs-test"
	a := crypto.GenPrivKeyEd25519()
	b := crypto.GenPrivKeyEd25519()

	tx := newStdTx([]byte("payload"))

	signers, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)

	sa, err := SignTx(a, tx, chainID, 0)
	require.NoError(t, err)
	sb, err := SignTx(b, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sa, sb}

	signers, err = VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.Equal(t, a.PublicKey().Condition(), signers[0])
	assert.Equal(t, b.PublicKey().Condition(), signers[1])

	// a signature over a different payload is rejected
	other := newStdTx([]byte("other payload"))
	bad, err := SignTx(a, other, chainID, 1)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{bad}
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}
