package cash

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are in alphabetical order, non zero and
// of distinct currencies.
func (s *Set) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return coin.Coins(s.Coins).Validate()
}

// NewSet returns a wallet content holding given coins. Coins of the same
// currency are merged.
func NewSet(coins ...*coin.Coin) (*Set, error) {
	var cs coin.Coins
	for _, c := range coins {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		var err error
		if cs, err = cs.Add(*c); err != nil {
			return nil, err
		}
	}
	return &Set{Metadata: &bridge.Metadata{Schema: 1}, Coins: cs}, nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket keyed by account
// address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Set{}),
	}
}

// GetOrEmpty returns the wallet of given address. A missing wallet is
// reported as an empty one.
func (b Bucket) GetOrEmpty(db bridge.ReadOnlyKVStore, addr bridge.Address) (*Set, error) {
	var s Set
	switch err := b.One(db, addr, &s); {
	case err == nil:
		return &s, nil
	case errors.ErrNotFound.Is(err):
		return &Set{Metadata: &bridge.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}

// Save stores the wallet. An empty wallet is removed from the store.
func (b Bucket) Save(db bridge.KVStore, addr bridge.Address, s *Set) error {
	if len(s.Coins) == 0 {
		if err := b.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return b.Put(db, addr, s)
}
