package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/x"
)

func registerAdminRoutes(r bridge.Registry, auth x.Authenticator, access Access, k keeper) {
	r.Handle(AddManagerMsg{}.Path(), AddManagerHandler{access: access})
	r.Handle(RemoveManagerMsg{}.Path(), RemoveManagerHandler{access: access})
	r.Handle(RenounceManagerMsg{}.Path(), RenounceManagerHandler{auth: auth, access: access})
	r.Handle(TransferOwnershipMsg{}.Path(), TransferOwnershipHandler{access: access})
	r.Handle(SetFeeBeneficiaryMsg{}.Path(), SetFeeBeneficiaryHandler{access: access, k: k})
	r.Handle(SetActiveMsg{}.Path(), SetActiveHandler{access: access})
	r.Handle(RegisterAssetMsg{}.Path(), RegisterAssetHandler{access: access, k: k})
	r.Handle(ChangeTimeLockMsg{}.Path(), ChangeTimeLockHandler{access: access})
	r.Handle(SetSwapLimitMsg{}.Path(), SetSwapLimitHandler{access: access, k: k})
	r.Handle(ResetTodaySwapAmountMsg{}.Path(), ResetTodaySwapAmountHandler{access: access, k: k})
}

// AddManagerHandler appoints a manager. Only the owner can do it.
type AddManagerHandler struct {
	access Access
}

var _ bridge.Handler = AddManagerHandler{}

func (h AddManagerHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h AddManagerHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	m := Manager{Metadata: &bridge.Metadata{Schema: 1}, Address: msg.Manager}
	if err := h.access.managers.Put(db, msg.Manager, &m); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("manager added", "manager", msg.Manager)
	return &bridge.DeliverResult{}, nil
}

func (h AddManagerHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*AddManagerMsg, error) {
	var msg AddManagerMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapOwner); err != nil {
		return nil, err
	}
	switch ok, err := h.access.IsManager(db, msg.Manager); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "%s is a manager", msg.Manager)
	}
	return &msg, nil
}

// RemoveManagerHandler removes a manager. Only the owner can do it, no
// matter how many managers are left.
type RemoveManagerHandler struct {
	access Access
}

var _ bridge.Handler = RemoveManagerHandler{}

func (h RemoveManagerHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h RemoveManagerHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.access.managers.Delete(db, msg.Manager); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("manager removed", "manager", msg.Manager)
	return &bridge.DeliverResult{}, nil
}

func (h RemoveManagerHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*RemoveManagerMsg, error) {
	var msg RemoveManagerMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapOwner); err != nil {
		return nil, err
	}
	if err := requireManager(h.access, db, msg.Manager); err != nil {
		return nil, err
	}
	return &msg, nil
}

func requireManager(a Access, db bridge.ReadOnlyKVStore, addr bridge.Address) error {
	ok, err := a.IsManager(db, addr)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "manager %s", addr)
	}
	return nil
}

// RenounceManagerHandler lets a manager step down.
type RenounceManagerHandler struct {
	auth   x.Authenticator
	access Access
}

var _ bridge.Handler = RenounceManagerHandler{}

func (h RenounceManagerHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h RenounceManagerHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.access.managers.Delete(db, msg.Manager); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("manager renounced", "manager", msg.Manager)
	return &bridge.DeliverResult{}, nil
}

func (h RenounceManagerHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*RenounceManagerMsg, error) {
	var msg RenounceManagerMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Manager, "manager"); err != nil {
		return nil, err
	}
	if err := requireManager(h.access, db, msg.Manager); err != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, err.Error())
	}
	return &msg, nil
}

// TransferOwnershipHandler hands the owner role over to another address.
type TransferOwnershipHandler struct {
	access Access
}

var _ bridge.Handler = TransferOwnershipHandler{}

func (h TransferOwnershipHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h TransferOwnershipHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	old := conf.Owner
	conf.Owner = msg.NewOwner
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("ownership transferred", "from", old, "to", msg.NewOwner)
	return &bridge.DeliverResult{}, nil
}

func (h TransferOwnershipHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*TransferOwnershipMsg, *Configuration, error) {
	var msg TransferOwnershipMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapOwner); err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// SetFeeBeneficiaryHandler changes the fee beneficiary. Fees accrued by the
// previous beneficiary are moved to the new one.
type SetFeeBeneficiaryHandler struct {
	access Access
	k      keeper
}

var _ bridge.Handler = SetFeeBeneficiaryHandler{}

func (h SetFeeBeneficiaryHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h SetFeeBeneficiaryHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	old := conf.FeeBeneficiary
	if !old.Equals(msg.Beneficiary) {
		ids, err := h.k.assetIDs(db)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			accrued, err := h.k.balance(db, id, old)
			if err != nil {
				return nil, err
			}
			if accrued.IsZero() {
				continue
			}
			if err := h.k.debit(db, id, old, accrued); err != nil {
				return nil, err
			}
			if err := h.k.credit(db, id, msg.Beneficiary, accrued); err != nil {
				return nil, err
			}
		}
	}
	conf.FeeBeneficiary = msg.Beneficiary
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("fee beneficiary changed", "from", old, "to", msg.Beneficiary)
	return &bridge.DeliverResult{}, nil
}

func (h SetFeeBeneficiaryHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*SetFeeBeneficiaryMsg, *Configuration, error) {
	var msg SetFeeBeneficiaryMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapOwner); err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// SetActiveHandler opens or closes the circuit breaker.
type SetActiveHandler struct {
	access Access
}

var _ bridge.Handler = SetActiveHandler{}

func (h SetActiveHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h SetActiveHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.Active = msg.Active
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("bridge activity changed", "active", msg.Active)
	return &bridge.DeliverResult{}, nil
}

func (h SetActiveHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*SetActiveMsg, *Configuration, error) {
	var msg SetActiveMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapManager); err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// RegisterAssetHandler registers an asset together with its empty pool.
type RegisterAssetHandler struct {
	access Access
	k      keeper
}

var _ bridge.Handler = RegisterAssetHandler{}

func (h RegisterAssetHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h RegisterAssetHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.k.registerAsset(db, msg.AssetID, msg.Ticker); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("asset registered", "asset", msg.AssetID, "ticker", msg.Ticker)
	return &bridge.DeliverResult{Data: msg.AssetID}, nil
}

func (h RegisterAssetHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*RegisterAssetMsg, error) {
	var msg RegisterAssetMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapManager); err != nil {
		return nil, err
	}
	switch err := h.k.assets.Has(db, msg.AssetID); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "asset %X", msg.AssetID)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}

// ChangeTimeLockHandler sets the withdraw time lock to the given duration
// and the deposit time lock to twice as much.
type ChangeTimeLockHandler struct {
	access Access
}

var _ bridge.Handler = ChangeTimeLockHandler{}

func (h ChangeTimeLockHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h ChangeTimeLockHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.WithdrawTimeLock = msg.WithdrawSeconds
	conf.DepositTimeLock = 2 * msg.WithdrawSeconds
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("time lock changed", "withdraw", conf.WithdrawTimeLock, "deposit", conf.DepositTimeLock)
	return &bridge.DeliverResult{}, nil
}

func (h ChangeTimeLockHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*ChangeTimeLockMsg, *Configuration, error) {
	var msg ChangeTimeLockMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapManager); err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// SetSwapLimitHandler configures the governor of an asset. The volume
// swapped today is kept.
type SetSwapLimitHandler struct {
	access Access
	k      keeper
}

var _ bridge.Handler = SetSwapLimitHandler{}

func (h SetSwapLimitHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h SetSwapLimitHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	l, err := h.k.swapLimit(db, msg.AssetID)
	if err != nil {
		return nil, err
	}
	l.Enabled = msg.Enabled
	l.DailyCap = msg.DailyCap
	if err := h.k.limits.Put(db, msg.AssetID, l); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("swap limit changed", "asset", msg.AssetID, "enabled", msg.Enabled, "cap", msg.DailyCap)
	return &bridge.DeliverResult{}, nil
}

func (h SetSwapLimitHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*SetSwapLimitMsg, error) {
	var msg SetSwapLimitMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapManager); err != nil {
		return nil, err
	}
	if _, err := h.k.asset(db, msg.AssetID); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResetTodaySwapAmountHandler zeroes the volume swapped today. There is no
// automatic reset at the day boundary.
type ResetTodaySwapAmountHandler struct {
	access Access
	k      keeper
}

var _ bridge.Handler = ResetTodaySwapAmountHandler{}

func (h ResetTodaySwapAmountHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h ResetTodaySwapAmountHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	l, err := h.k.swapLimit(db, msg.AssetID)
	if err != nil {
		return nil, err
	}
	l.SwappedToday = nil
	if err := h.k.limits.Put(db, msg.AssetID, l); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Info("swap amount reset", "asset", msg.AssetID)
	return &bridge.DeliverResult{}, nil
}

func (h ResetTodaySwapAmountHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*ResetTodaySwapAmountMsg, error) {
	var msg ResetTodaySwapAmountMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapManager); err != nil {
		return nil, err
	}
	if _, err := h.k.asset(db, msg.AssetID); err != nil {
		return nil, err
	}
	return &msg, nil
}
