package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/gconf"
)

// confPkg is the name under which the configuration singleton is kept.
const confPkg = "lockbox"

var _ gconf.Configuration = (*Configuration)(nil)

// Validate ensures the configuration is usable. The deposit time lock must
// be strictly longer than the withdraw time lock, so that a depositor can
// never reclaim funds while the counterpart withdraw is still open.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	errs = errors.AppendField(errs, "FeeBeneficiary", c.FeeBeneficiary.Validate())
	if len(c.DefaultAsset) != 0 {
		errs = errors.AppendField(errs, "DefaultAsset", validateID("default asset", c.DefaultAsset))
	}
	if err := c.WithdrawTimeLock.Validate(); err != nil {
		errs = errors.AppendField(errs, "WithdrawTimeLock", err)
	} else if c.DepositTimeLock <= c.WithdrawTimeLock {
		errs = errors.AppendField(errs, "DepositTimeLock",
			errors.Wrapf(errors.ErrInput, "must be greater than withdraw time lock %d", c.WithdrawTimeLock))
	}
	return errs
}

// LoadConfiguration returns the current configuration of the extension.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// SaveConfiguration validates and stores the configuration.
func SaveConfiguration(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, confPkg, conf)
}

// InitConfig reads the configuration from genesis under "conf"."lockbox".
func InitConfig(db bridge.KVStore, opts bridge.Options) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, confPkg, &conf)
}

// requireActive fails with ErrInactive when the circuit breaker is open.
func requireActive(conf *Configuration) error {
	if !conf.Active {
		return errors.Wrap(ErrInactive, "bridge is paused")
	}
	return nil
}
