package bridge

import "github.com/iov-one/bridge/store"

// Move references for all storage types into this package for shorter names
// everywhere.

type ReadOnlyKVStore = store.ReadOnlyKVStore
type SetDeleter = store.SetDeleter
type KVStore = store.KVStore
type Batch = store.Batch
type Iterator = store.Iterator
type CacheableKVStore = store.CacheableKVStore
type KVCacheWrap = store.KVCacheWrap
type CommitKVStore = store.CommitKVStore
type CommitID = store.CommitID
