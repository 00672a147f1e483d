package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/orm"
	"github.com/iov-one/bridge/x"
)

// Capability names a privilege required by a handler.
type Capability int

const (
	// CapOwner is held by the single configured owner.
	CapOwner Capability = iota + 1
	// CapManager is held by every member of the manager set. The owner is
	// not a manager unless appointed.
	CapManager
)

func (c Capability) String() string {
	switch c {
	case CapOwner:
		return "owner"
	case CapManager:
		return "manager"
	default:
		return "unknown"
	}
}

// Access is the single gate used by all privileged handlers.
type Access struct {
	auth     x.Authenticator
	managers orm.ModelBucket
}

// NewAccess returns a gate that reads the signers using given
// authenticator.
func NewAccess(auth x.Authenticator) Access {
	return Access{auth: auth, managers: NewManagerBucket()}
}

// Require returns the address of a signer holding given capability, or
// ErrUnauthorized if none of the signers does.
func (a Access) Require(ctx bridge.Context, db bridge.ReadOnlyKVStore, c Capability) (bridge.Address, error) {
	switch c {
	case CapOwner:
		conf, err := LoadConfiguration(db)
		if err != nil {
			return nil, err
		}
		if err := x.RequireAddress(ctx, a.auth, conf.Owner, "owner"); err != nil {
			return nil, err
		}
		return conf.Owner, nil
	case CapManager:
		for _, addr := range x.GetAddresses(ctx, a.auth) {
			switch err := a.managers.Has(db, addr); {
			case err == nil:
				return addr, nil
			case errors.ErrNotFound.Is(err):
			default:
				return nil, err
			}
		}
		return nil, errors.Wrap(errors.ErrUnauthorized, "manager signature required")
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unknown capability %d", c)
	}
}

// IsManager returns true if given address belongs to the manager set.
func (a Access) IsManager(db bridge.ReadOnlyKVStore, addr bridge.Address) (bool, error) {
	switch err := a.managers.Has(db, addr); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}
