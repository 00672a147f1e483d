package store

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// TestSuite holds store behaviour checks that every CacheableKVStore
// implementation must pass. Package specific tests only provide the store
// constructor.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store and a function releasing
// its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet does basic sanity checks on cache wrapping.
func (s *TestSuite) GetSet(t *testing.T) {
	Convey("Given an empty store", t, func() {
		base, cleanup := s.makeBase()
		defer cleanup()

		k, v := []byte("french"), []byte("fry")
		assertGetHas(base, k, nil, false)
		So(base.Set(k, v), ShouldBeNil)
		assertGetHas(base, k, v, true)

		Convey("a cache wrap sees the base data", func() {
			cache := base.CacheWrap()
			assertGetHas(cache, k, v, true)

			Convey("writes are only visible in the cache until written", func() {
				k2, v2 := []byte("LA"), []byte("Dodgers")
				So(cache.Set(k2, v2), ShouldBeNil)
				assertGetHas(cache, k2, v2, true)
				assertGetHas(base, k2, nil, false)

				So(cache.Write(), ShouldBeNil)
				assertGetHas(base, k2, v2, true)
			})

			Convey("discarded changes never reach the base", func() {
				So(cache.Delete(k), ShouldBeNil)
				assertGetHas(cache, k, nil, false)
				cache.Discard()
				assertGetHas(base, k, v, true)
			})
		})
	})
}

// CacheConflicts checks that nested cache wraps override each other in
// order.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	Convey("Given a store with two keys", t, func() {
		base, cleanup := s.makeBase()
		defer cleanup()

		a, b := []byte("a"), []byte("b")
		So(base.Set(a, []byte("1")), ShouldBeNil)
		So(base.Set(b, []byte("2")), ShouldBeNil)

		outer := base.CacheWrap()
		So(outer.Set(a, []byte("10")), ShouldBeNil)
		inner := outer.CacheWrap()
		So(inner.Delete(b), ShouldBeNil)
		So(inner.Set(a, []byte("100")), ShouldBeNil)

		Convey("the innermost value wins", func() {
			assertGetHas(inner, a, []byte("100"), true)
			assertGetHas(inner, b, nil, false)
			assertGetHas(outer, a, []byte("10"), true)
			assertGetHas(outer, b, []byte("2"), true)
		})

		Convey("writing both layers reaches the base", func() {
			So(inner.Write(), ShouldBeNil)
			So(outer.Write(), ShouldBeNil)
			assertGetHas(base, a, []byte("100"), true)
			assertGetHas(base, b, nil, false)
		})
	})
}

// IteratorWithConflicts checks iteration over a cache wrap that overrides
// and deletes data of the store below.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	Convey("Given a cache wrap shadowing base data", t, func() {
		base, cleanup := s.makeBase()
		defer cleanup()

		for _, k := range []string{"a", "c", "e", "g"} {
			So(base.Set([]byte(k), []byte("base-"+k)), ShouldBeNil)
		}
		cache := base.CacheWrap()
		So(cache.Set([]byte("b"), []byte("cache-b")), ShouldBeNil)
		So(cache.Set([]byte("c"), []byte("cache-c")), ShouldBeNil)
		So(cache.Delete([]byte("e")), ShouldBeNil)
		So(cache.Delete([]byte("z")), ShouldBeNil)

		Convey("ascending iteration merges both layers", func() {
			it, err := cache.Iterator(nil, nil)
			So(err, ShouldBeNil)
			keys, values := drain(it)
			So(keys, ShouldResemble, []string{"a", "b", "c", "g"})
			So(values, ShouldResemble, []string{"base-a", "cache-b", "cache-c", "base-g"})
		})

		Convey("descending iteration merges both layers", func() {
			it, err := cache.ReverseIterator(nil, nil)
			So(err, ShouldBeNil)
			keys, _ := drain(it)
			So(keys, ShouldResemble, []string{"g", "c", "b", "a"})
		})

		Convey("ranges are start inclusive and end exclusive", func() {
			it, err := cache.Iterator([]byte("b"), []byte("g"))
			So(err, ShouldBeNil)
			keys, _ := drain(it)
			So(keys, ShouldResemble, []string{"b", "c"})

			it, err = cache.ReverseIterator([]byte("b"), []byte("g"))
			So(err, ShouldBeNil)
			keys, _ = drain(it)
			So(keys, ShouldResemble, []string{"c", "b"})
		})
	})
}

func assertGetHas(kv ReadOnlyKVStore, key, val []byte, has bool) {
	got, err := kv.Get(key)
	So(err, ShouldBeNil)
	if val == nil {
		So(got, ShouldBeNil)
	} else {
		So(got, ShouldResemble, val)
	}
	exists, err := kv.Has(key)
	So(err, ShouldBeNil)
	So(exists, ShouldEqual, has)
}

func drain(it Iterator) (keys, values []string) {
	defer it.Close()
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
		values = append(values, string(it.Value()))
	}
	return keys, values
}
