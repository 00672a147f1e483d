package app

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining the
// scratch pad that all deliveries write to, and returning useful state info.
type CommitStore struct {
	committed bridge.CommitKVStore
	deliver   bridge.KVCacheWrap
}

// NewCommitStore loads the latest version of the CommitKVStore and sets up
// the deliver cache.
func NewCommitStore(store bridge.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current version and hash.
func (cs *CommitStore) CommitInfo() (bridge.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates a new deliver cache.
//
// Callers must serialize Commit with every use of DeliverStore.
func (cs *CommitStore) Commit() (bridge.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return bridge.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a fresh scratch pad on top of the pending deliver
// state. It must be discarded after use.
func (cs *CommitStore) CheckStore() bridge.KVCacheWrap {
	return cs.deliver.CacheWrap()
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() bridge.CacheableKVStore {
	return cs.deliver
}

//------- storing chainID ---------

// _br: is a prefix for ledger internal data
const chainIDKey = "_br:chainID"

// LoadChainID returns the chain id stored if any.
func LoadChainID(kv bridge.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// SaveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func SaveChainID(kv bridge.KVStore, chainID string) error {
	if !bridge.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
