package bridgetest

import (
	"context"
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a random key. The result can be used
// as a signer or as a distinct account.
func NewCondition() bridge.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns an 8 byte big endian encoded number.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}

// Ctx returns a context with a chain id, a height and given block time set.
func Ctx(now time.Time) bridge.Context {
	ctx := context.Background()
	ctx = bridge.WithChainID(ctx, "test-chain")
	ctx = bridge.WithHeight(ctx, 1)
	return bridge.WithBlockTime(ctx, now)
}
