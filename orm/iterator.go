package orm

import (
	"reflect"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// ModelIterator iterates over all models of a bucket in ascending order of
// their primary keys.
//
// CONTRACT: No writes may happen within a bucket while an iterator exists
// over it.
type ModelIterator struct {
	it     bridge.Iterator
	prefix []byte
	model  reflect.Type
}

// LoadNext loads the next model into dest and returns its primary key. When
// there are no more models, ErrIteratorDone is returned.
func (i *ModelIterator) LoadNext(dest Model) ([]byte, error) {
	if reflect.TypeOf(dest) != i.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot load into %T", dest)
	}
	if !i.it.Valid() {
		return nil, errors.ErrIteratorDone
	}
	key := append([]byte(nil), i.it.Key()[len(i.prefix):]...)
	if err := bridge.Unmarshal(i.it.Value(), dest); err != nil {
		return nil, errors.Wrapf(err, "key %q", key)
	}
	if err := i.it.Next(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return key, nil
}

// Release releases the iterator.
func (i *ModelIterator) Release() {
	i.it.Close()
}
