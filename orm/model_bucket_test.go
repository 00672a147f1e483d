package orm

import (
	"strconv"
	"testing"

	"github.com/iov-one/bridge/bridgetest/assert"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/store"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()

	b := NewModelBucket("cnts", &Counter{})

	if err := b.Put(db, []byte("c1"), &Counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 Counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	if err := b.One(db, []byte("c1"), &Other{}); !errors.ErrType.Is(err) {
		t.Fatalf("unexpected error for a wrong destination type: %s", err)
	}
	if err := b.Put(db, []byte("c2"), &Counter{Count: -1}); !errors.ErrModel.Is(err) {
		t.Fatalf("unexpected error for an invalid model: %s", err)
	}
	if err := b.Put(db, nil, &Counter{Count: 2}); !errors.ErrEmpty.Is(err) {
		t.Fatalf("unexpected error for an empty key: %s", err)
	}

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
	if err := b.Has(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model has: %s", err)
	}
}

func indexByValue(m Model) ([]byte, error) {
	c, ok := m.(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return []byte(strconv.FormatInt(c.Count, 10)), nil
}

func TestModelBucketByIndex(t *testing.T) {
	cases := map[string]struct {
		IndexName string
		QueryKey  string
		Dest      []*Counter
		WantErr   *errors.Error
		WantRes   []*Counter
		WantKeys  [][]byte
	}{
		"find none": {
			IndexName: "value",
			QueryKey:  "124089710947120",
		},
		"find one": {
			IndexName: "value",
			QueryKey:  "1111",
			WantRes:   []*Counter{{Count: 1111}},
			WantKeys:  [][]byte{[]byte("c3")},
		},
		"find two with allocated destination": {
			IndexName: "value",
			QueryKey:  "4444",
			Dest:      make([]*Counter, 0, 10),
			WantRes:   []*Counter{{Count: 4444}, {Count: 4444}},
			WantKeys:  [][]byte{[]byte("c1"), []byte("c2")},
		},
		"find two with non empty destination": {
			IndexName: "value",
			QueryKey:  "4444",
			Dest:      []*Counter{{Count: 7}},
			WantRes: []*Counter{
				// Destination is always appended to.
				{Count: 7},

				{Count: 4444},
				{Count: 4444},
			},
			WantKeys: [][]byte{[]byte("c1"), []byte("c2")},
		},
		"non existing index name": {
			IndexName: "xyz",
			WantErr:   ErrInvalidIndex,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewModelBucket("cnts", &Counter{}, WithIndex("value", indexByValue, false))

			assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 4444}))
			assert.Nil(t, b.Put(db, []byte("c2"), &Counter{Count: 4444}))
			assert.Nil(t, b.Put(db, []byte("c3"), &Counter{Count: 1111}))
			assert.Nil(t, b.Put(db, []byte("c4"), &Counter{Count: 99999}))

			keys, err := b.ByIndex(db, tc.IndexName, []byte(tc.QueryKey), &tc.Dest)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			assert.Equal(t, tc.WantRes, tc.Dest)
			assert.Equal(t, tc.WantKeys, keys)
		})
	}
}

func TestModelBucketByIndexValueSlice(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{}, WithIndex("value", indexByValue, false))
	assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 5}))

	var values []Counter
	_, err := b.ByIndex(db, "value", []byte("5"), &values)
	assert.Nil(t, err)
	assert.Equal(t, []Counter{{Count: 5}}, values)

	var others []*Other
	_, err = b.ByIndex(db, "value", []byte("5"), &others)
	assert.IsErr(t, errors.ErrType, err)
}

func TestIndexFollowsUpdates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{}, WithIndex("value", indexByValue, false))

	assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 1}))
	assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 2}))

	var res []*Counter
	keys, err := b.ByIndex(db, "value", []byte("1"), &res)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))

	keys, err = b.ByIndex(db, "value", []byte("2"), &res)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("c1")}, keys)

	assert.Nil(t, b.Delete(db, []byte("c1")))
	keys, err = b.ByIndex(db, "value", []byte("2"), &res)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))
}

func TestUniqueIndex(t *testing.T) {
	db := store.MemStore()
	byOwner := func(m Model) ([]byte, error) {
		return m.(*Counter).Owner, nil
	}
	b := NewModelBucket("cnts", &Counter{}, WithIndex("owner", byOwner, true))

	assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 1, Owner: []byte("alice")}))
	// Updating the same entity keeps its own index entry.
	assert.Nil(t, b.Put(db, []byte("c1"), &Counter{Count: 2, Owner: []byte("alice")}))
	// Models without an owner are not indexed.
	assert.Nil(t, b.Put(db, []byte("c2"), &Counter{Count: 3}))
	assert.Nil(t, b.Put(db, []byte("c3"), &Counter{Count: 4}))

	err := b.Put(db, []byte("c4"), &Counter{Count: 5, Owner: []byte("alice")})
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestModelIterator(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})
	other := NewModelBucket("cntsx", &Counter{})

	assert.Nil(t, b.Put(db, []byte("b"), &Counter{Count: 2}))
	assert.Nil(t, b.Put(db, []byte("a"), &Counter{Count: 1}))
	assert.Nil(t, other.Put(db, []byte("a"), &Counter{Count: 100}))

	it, err := b.Iter(db)
	assert.Nil(t, err)
	defer it.Release()

	var got []int64
	var keys []string
	for {
		var c Counter
		key, err := it.LoadNext(&c)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		got = append(got, c.Count)
		keys = append(keys, string(key))
	}
	assert.Equal(t, []int64{1, 2}, got)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestNativeIdxKeyPacking(t *testing.T) {
	chunks := [][]byte{[]byte("aaa"), {}, []byte("c")}
	raw, err := packNativeIdxKey(chunks)
	assert.Nil(t, err)
	assert.Equal(t, []byte("_x.\x03aaa\x00\x01c"), raw)

	got, err := unpackNativeIdxKey(raw)
	assert.Nil(t, err)
	assert.Equal(t, chunks, got)

	_, err = packNativeIdxKey([][]byte{make([]byte, 255)})
	assert.IsErr(t, errors.ErrInput, err)

	_, err = unpackNativeIdxKey([]byte("nope"))
	assert.IsErr(t, errors.ErrInput, err)
}
