package store

import (
	"bytes"
)

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIterator joins cached items with those of the parent, taking into
// consideration overwrites and deletes.
type mergeIterator struct {
	items     []entry
	pos       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []entry, parent Iterator, ascending bool) (*mergeIterator, error) {
	it := &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	if err := it.skipDeleted(); err != nil {
		parent.Close()
		return nil, err
	}
	return it, nil
}

func (i *mergeIterator) Valid() bool {
	return i.first() != none
}

func (i *mergeIterator) Next() error {
	switch i.first() {
	case us:
		i.pos++
	case both:
		i.pos++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("advanced past the end")
	}
	return i.skipDeleted()
}

func (i *mergeIterator) Key() []byte {
	switch i.first() {
	case us, both:
		return i.items[i.pos].key
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

func (i *mergeIterator) Value() []byte {
	switch i.first() {
	case us, both:
		return i.items[i.pos].value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

func (i *mergeIterator) Close() {
	i.parent.Close()
	i.items = nil
}

// skipDeleted fast forwards over all deleted entries, together with the
// parent entries they shadow.
func (i *mergeIterator) skipDeleted() error {
	for {
		src := i.first()
		if src != us && src != both {
			return nil
		}
		if !i.items[i.pos].deleted {
			return nil
		}
		i.pos++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// first selects the source with the next key in iteration order.
func (i *mergeIterator) first() source {
	cached := i.pos < len(i.items)
	inParent := i.parent != nil && i.parent.Valid()
	switch {
	case !cached && !inParent:
		return none
	case !inParent:
		return us
	case !cached:
		return parent
	}

	cmp := bytes.Compare(i.items[i.pos].key, i.parent.Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return us
	case cmp > 0:
		return parent
	default:
		return both
	}
}

// NewSliceIterator returns an iterator over preloaded key value pairs. Both
// slices must be of the same length and ordered as the iteration should be.
func NewSliceIterator(keys, values [][]byte) Iterator {
	return &sliceIterator{keys: keys, values: values}
}

// sliceIterator iterates over preloaded key value pairs.
type sliceIterator struct {
	keys   [][]byte
	values [][]byte
	pos    int
}

var _ Iterator = (*sliceIterator)(nil)

func (s *sliceIterator) Valid() bool {
	return s.pos < len(s.keys)
}

func (s *sliceIterator) Next() error {
	s.assertValid()
	s.pos++
	return nil
}

func (s *sliceIterator) Key() []byte {
	s.assertValid()
	return s.keys[s.pos]
}

func (s *sliceIterator) Value() []byte {
	s.assertValid()
	return s.values[s.pos]
}

func (s *sliceIterator) Close() {
	s.keys, s.values = nil, nil
}

func (s *sliceIterator) assertValid() {
	if !s.Valid() {
		panic("passed end of slice")
	}
}
