package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a bucket name prefix and
// keeps its secondary indexes up to date.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db bridge.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db bridge.ReadOnlyKVStore, key []byte) error

	// ByIndex returns all models that are referenced by the given index
	// key. Models are appended to given destination which must be a
	// pointer to a slice of models, for example *[]*Deposit. Primary keys
	// of the loaded models are returned in the same order.
	ByIndex(db bridge.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put saves given model in the database. Before inserting into the
	// database, model is validated using its Validate method.
	Put(db bridge.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db bridge.KVStore, key []byte) error

	// Iter returns an iterator over all models stored in this bucket,
	// ordered by their primary key.
	Iter(db bridge.ReadOnlyKVStore) (*ModelIterator, error)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return WithMultiKeyIndex(name, func(m Model) ([][]byte, error) {
		key, err := indexer(m)
		if err != nil || key == nil {
			return nil, err
		}
		return [][]byte{key}, nil
	}, unique)
}

// WithMultiKeyIndex is like WithIndex but the indexer can reference an
// entity under many index values.
func WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		// no duplicate indexes! (panic on init)
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("Index %s registered twice", name))
		}
		mb.indexes[name] = newNativeIndex(mb.name+"_"+name, indexer, unique)
	}
}

// NewModelBucket returns a ModelBucket instance. The model argument is used
// only to learn the type of the entity stored.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr || tp.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("model must be a pointer to a struct, got %T", m))
	}
	mb := &modelBucket{
		name:    name,
		prefix:  append([]byte(name), ':'),
		model:   tp,
		indexes: make(map[string]*nativeIndex),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]*nativeIndex
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey is the full key we store in the db, including prefix. We copy into
// a new array rather than use append, as we don't want consecutive calls to
// overwrite the same byte array.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model.Elem()).Interface().(Model)
}

func (mb *modelBucket) One(db bridge.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot load into %T", mb.name, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := bridge.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(err, "%s bucket", mb.name)
	}
	return nil
}

func (mb *modelBucket) Has(db bridge.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s bucket", mb.name)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db bridge.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %q", indexName)
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to a slice of models")
	}
	if dest.IsNil() {
		return nil, errors.Wrap(errors.ErrImmutable, "got nil pointer")
	}
	slice := dest.Elem()
	ptrElem := slice.Type().Elem() == mb.model
	if !ptrElem && slice.Type().Elem() != mb.model.Elem() {
		return nil, errors.Wrapf(errors.ErrType, "this bucket operates on %s model and cannot return %s", mb.model, slice.Type().Elem())
	}

	refs, err := idx.keys(db, key)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		m := mb.newModel()
		if err := mb.One(db, ref, m); err != nil {
			return nil, errors.Wrapf(err, "index %q points to %q", indexName, ref)
		}
		val := reflect.ValueOf(m)
		if !ptrElem {
			val = val.Elem()
		}
		slice = reflect.Append(slice, val)
	}
	dest.Elem().Set(slice)
	return refs, nil
}

func (mb *modelBucket) Put(db bridge.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot store %T", mb.name, m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := bridge.Marshal(m)
	if err != nil {
		return err
	}
	prev, err := mb.previous(db, key)
	if err != nil {
		return err
	}
	if err := mb.updateIndexes(db, key, prev, m); err != nil {
		return err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) Delete(db bridge.KVStore, key []byte) error {
	prev, err := mb.previous(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s bucket", mb.name)
	}
	if err := mb.updateIndexes(db, key, prev, nil); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) Iter(db bridge.ReadOnlyKVStore) (*ModelIterator, error) {
	end := mb.dbKey(nil)
	end[len(end)-1]++
	it, err := db.Iterator(mb.dbKey(nil), end)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &ModelIterator{it: it, prefix: mb.prefix, model: mb.model}, nil
}

// previous returns the currently stored model or nil.
func (mb *modelBucket) previous(db bridge.ReadOnlyKVStore, key []byte) (Model, error) {
	if len(mb.indexes) == 0 {
		if err := mb.Has(db, key); err != nil {
			if errors.ErrNotFound.Is(err) {
				return nil, nil
			}
			return nil, err
		}
		// Without indexes the content is never inspected.
		return mb.newModel(), nil
	}
	prev := mb.newModel()
	switch err := mb.One(db, key, prev); {
	case err == nil:
		return prev, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

func (mb *modelBucket) updateIndexes(db bridge.KVStore, key []byte, prev, next Model) error {
	for name, idx := range mb.indexes {
		if err := idx.update(db, key, prev, next); err != nil {
			return errors.Wrapf(err, "index %q", name)
		}
	}
	return nil
}
