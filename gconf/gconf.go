package gconf

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// ReadStore is the read part of bridge.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of bridge.KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is a protobuf message that validates itself.
type Configuration interface {
	bridge.Persistent
	Validate() error
}

// key returns the singleton key of the configuration of pkg.
func key(pkg string) []byte {
	return append([]byte("_c:"), pkg...)
}

// Save validates conf and stores it as the configuration of pkg. An
// invalid configuration is never written.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := bridge.Marshal(conf)
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	if err := db.Set(key(pkg), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "save %s configuration: %s", pkg, err)
	}
	return nil
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned
// when none was saved.
func Load(db ReadStore, pkg string, dst bridge.Persistent) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "load %s configuration: %s", pkg, err)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	return errors.Wrapf(bridge.Unmarshal(raw, dst), "unmarshal %s configuration", pkg)
}

// InitConfig saves the genesis value found under conf.<pkg>.
func InitConfig(db Store, opts bridge.Options, pkg string, conf Configuration) error {
	var all bridge.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return err
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %s configuration", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "genesis %s configuration", pkg)
	}
	return Save(db, pkg, conf)
}
