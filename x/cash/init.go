package cash

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use bridge.Address, so address in hex, not base64
type GenesisAccount struct {
	Address bridge.Address `json:"address"`
	Coins   []*coin.Coin   `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ bridge.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts bridge.Options, kv bridge.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		wallet, err := NewSet(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := bucket.Save(kv, acct.Address, wallet); err != nil {
			return err
		}
	}
	return nil
}
