/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index, the key the model is stored under.
* It may possess one or more secondary indexes (1:1 or 1:N).
* Easy queries for one and iteration.
*/
package orm

import (
	"github.com/iov-one/bridge"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	bridge.Persistent
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// ModelSlicePtr is a pointer to a slice of Models, for example
// *[]*Deposit. It is used as a destination of multi result queries.
type ModelSlicePtr interface{}

// Indexer calculates the secondary index key for a given model. Returning a
// nil key excludes the model from the index.
type Indexer func(Model) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given model.
type MultiKeyIndexer func(Model) ([][]byte, error)
