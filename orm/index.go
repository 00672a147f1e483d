package orm

import (
	"bytes"
	"math"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

const nativeIdxPrefix = "_x."

// nativeIndex is an index implementation that is using a database native
// storage and query in order to maintain and provide access to an index.
// Each indexed value is a separate database key with an empty value.
type nativeIndex struct {
	name    string
	indexer MultiKeyIndexer
	unique  bool
}

func newNativeIndex(name string, indexer MultiKeyIndexer, unique bool) *nativeIndex {
	return &nativeIndex{
		name:    name,
		indexer: indexer,
		unique:  unique,
	}
}

// update updates the index. It should be called when any of the bucket
// entities has changed in the store.
//
// prev == nil means insert
// next == nil means delete
// both == nil is error
func (ix *nativeIndex) update(db bridge.KVStore, pk []byte, prev, next Model) error {
	if next == nil && prev == nil {
		return errors.Wrap(errors.ErrInput, "update requires at least one non-nil object")
	}

	var prevValues, nextValues [][]byte
	if prev != nil {
		var err error
		if prevValues, err = ix.indexer(prev); err != nil {
			return errors.Wrap(err, "indexer")
		}
	}
	if next != nil {
		var err error
		if nextValues, err = ix.indexer(next); err != nil {
			return errors.Wrap(err, "indexer")
		}
	}

	// Delete.
	for _, v := range subtract(prevValues, nextValues) {
		idxKey, err := packNativeIdxKey([][]byte{[]byte(ix.name), v, pk})
		if err != nil {
			return errors.Wrap(err, "build index key")
		}
		if err := db.Delete(idxKey); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}

	// Insert.
	for _, v := range subtract(nextValues, prevValues) {
		if ix.unique {
			refs, err := ix.keys(db, v)
			if err != nil {
				return err
			}
			if len(refs) != 0 {
				return errors.Wrapf(errors.ErrDuplicate, "unique index %q", ix.name)
			}
		}
		idxKey, err := packNativeIdxKey([][]byte{[]byte(ix.name), v, pk})
		if err != nil {
			return errors.Wrap(err, "build index key")
		}
		if err := db.Set(idxKey, []byte{}); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

// keys returns all entity keys that were indexed under given value.
func (ix *nativeIndex) keys(db bridge.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	lookupKey, err := packNativeIdxKey([][]byte{[]byte(ix.name), value})
	if err != nil {
		return nil, errors.Wrap(err, "build index key")
	}

	// Index key is in format:
	//    <prefix>#<index name>#<value>#<entity id>
	// where # is the chunk length. All entries for a value are between
	//    <prefix>#<index name>#<value> and <prefix>#<index name>#<value>{255}
	// Value 255 is never used as a chunk length.
	end := make([]byte, len(lookupKey)+1)
	copy(end, lookupKey)
	end[len(end)-1] = math.MaxUint8

	it, err := db.Iterator(lookupKey, end)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	var refs [][]byte
	for it.Valid() {
		chunks, err := unpackNativeIdxKey(it.Key())
		if err != nil {
			return nil, errors.Wrap(err, "unpack native index key")
		}
		refs = append(refs, chunks[len(chunks)-1])
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return refs, nil
}

// subtract returns all elements of minuend that are not in subtrahend.
func subtract(minuend [][]byte, subtrahend [][]byte) [][]byte {
	var res [][]byte
outer:
	for _, m := range minuend {
		for _, s := range subtrahend {
			if bytes.Equal(m, s) {
				continue outer
			}
		}
		res = append(res, m)
	}
	return res
}

// packNativeIdxKey serialize a native index key from a set of values to a
// single key. This process can be reversed using unpackNativeIdxKey function.
//
// Native index key is a byte array. After the same for every native index
// prefix, a collection of bytes is serialized in order. Each element of the
// collection must be at most 254 bytes long.
//
// When serialized, each chunk is prefixed with its length, encoded as a uint8
// value.  If a key is created from 3 chunks, "aaa", "" and "c", that key
// representation is:
//
//   _x.<3>aaa<0><1>c
//
// where <3>, <0> and <1> are that number values in bytes.
func packNativeIdxKey(chunks [][]byte) ([]byte, error) {
	var size int
	for _, b := range chunks {
		size += len(b) + 1
	}
	res := make([]byte, 0, size+len(nativeIdxPrefix))
	res = append(res, nativeIdxPrefix...)

	for _, b := range chunks {
		// MaxUint8 is reserved for the search purpose. MaxUint8 - 1 is
		// the greatest allowed length.
		if len(b) > math.MaxUint8-1 {
			return nil, errors.Wrapf(errors.ErrInput, "no chunk can be bigger than %d bytes", math.MaxUint8-1)
		}
		res = append(res, uint8(len(b)))
		res = append(res, b...)
	}
	return res, nil
}

// unpackNativeIdxKey decodes native index key and extracts all chunks that
// compose that key.
func unpackNativeIdxKey(b []byte) ([][]byte, error) {
	if !bytes.HasPrefix(b, []byte(nativeIdxPrefix)) {
		return nil, errors.Wrap(errors.ErrInput, "not a native index key")
	}
	b = b[len(nativeIdxPrefix):]
	res := make([][]byte, 0, 3)
	for len(b) > 0 {
		size := int(b[0])
		if len(b) < 1+size {
			return nil, errors.Wrap(errors.ErrInput, "malformed offset")
		}
		res = append(res, b[1:1+size])
		b = b[1+size:]
	}
	return res, nil
}
