package lockbox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

const (
	// IDSize is the length of lock-box ids, asset ids and hash locks.
	IDSize = 32
	// SecretSize is the length of a secret.
	SecretSize = 32
)

// idEpoch is the beginning of time as far as lock-box ids are concerned.
var idEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewLockBoxID returns a new random lock-box id. The first 4 bytes are the
// seconds since 2020-01-01, the remaining 28 are read from given source of
// randomness, crypto/rand if nil.
func NewLockBoxID(now time.Time, random io.Reader) (bridge.HexBytes, error) {
	if random == nil {
		random = rand.Reader
	}
	id := make([]byte, IDSize)
	secs := now.Sub(idEpoch) / time.Second
	if secs < 0 {
		secs = 0
	}
	binary.BigEndian.PutUint32(id[:4], uint32(secs))
	if _, err := io.ReadFull(random, id[4:]); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read random: %s", err)
	}
	return id, nil
}

// NewSecret returns a random secret and its hash lock.
func NewSecret(random io.Reader) (secret, lockHash bridge.HexBytes, err error) {
	if random == nil {
		random = rand.Reader
	}
	secret = make([]byte, SecretSize)
	if _, err := io.ReadFull(random, secret); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInput, "read random: %s", err)
	}
	return secret, HashSecret(secret), nil
}

// HashSecret returns the hash lock of given secret.
func HashSecret(secret []byte) bridge.HexBytes {
	h := sha256.Sum256(secret)
	return h[:]
}

// AssetID returns the conventional id of an asset pool of given bridge.
func AssetID(bridgeName, ticker string) bridge.HexBytes {
	h := sha256.Sum256([]byte(bridgeName + "|" + ticker))
	return h[:]
}

// PoolAddress returns the custody account holding the pool of an asset.
func PoolAddress(assetID []byte) bridge.Address {
	return bridge.NewCondition("lockbox", "pool", assetID).Address()
}

// EscrowAddress returns the custody account holding the funds of an open
// deposit.
func EscrowAddress(depositID []byte) bridge.Address {
	return bridge.NewCondition("lockbox", "deposit", depositID).Address()
}

func validateID(name string, id []byte) error {
	if len(id) != IDSize {
		return errors.Wrapf(errors.ErrInput, "%s must be %d bytes", name, IDSize)
	}
	return nil
}
