package lockbox

import (
	"bytes"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/orm"
	"github.com/iov-one/bridge/x"
)

// RegisterRoutes registers all lock-box handlers. Funds are moved using
// given asset port.
//
// A handler validates everything before its first write and the asset
// transfer is that first write, so a rejected message or a failed transfer
// leaves the store untouched. Failures of the store itself after the
// transfer are not rolled back here; run the router behind a savepoint
// (utils.NewSavepoint().OnDeliver()) or on a discarded cache for that.
func RegisterRoutes(r bridge.Registry, auth x.Authenticator, port AssetPort) {
	k := newKeeper(port)
	access := NewAccess(auth)

	r.Handle(OpenDepositMsg{}.Path(), OpenDepositHandler{auth: auth, k: k})
	r.Handle(OpenWithdrawMsg{}.Path(), OpenWithdrawHandler{access: access, k: k})
	r.Handle(CloseDepositMsg{}.Path(), CloseDepositHandler{access: access, k: k})
	r.Handle(CloseWithdrawMsg{}.Path(), CloseWithdrawHandler{k: k})
	r.Handle(ExpireDepositMsg{}.Path(), ExpireDepositHandler{auth: auth, k: k})
	r.Handle(ExpireWithdrawMsg{}.Path(), ExpireWithdrawHandler{access: access, k: k})

	r.Handle(IncreaseLiquidityMsg{}.Path(), IncreaseLiquidityHandler{auth: auth, k: k})
	r.Handle(DecreaseLiquidityMsg{}.Path(), DecreaseLiquidityHandler{auth: auth, k: k})

	registerAdminRoutes(r, auth, access, k)
}

func blockNow(ctx bridge.Context) (bridge.UnixTime, error) {
	now, ok := bridge.BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block time not set")
	}
	return bridge.AsUnixTime(now), nil
}

func loadBox(db bridge.ReadOnlyKVStore, b orm.ModelBucket, id []byte) (*LockBox, error) {
	var box LockBox
	if err := b.One(db, id, &box); err != nil {
		return nil, errors.Wrapf(err, "lock-box %X", id)
	}
	return &box, nil
}

func requireUnused(db bridge.ReadOnlyKVStore, b orm.ModelBucket, id []byte) error {
	switch err := b.Has(db, id); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "lock-box %X", id)
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}

// requireSecret fails with ErrBadSecret unless the secret opens the box.
func requireSecret(box *LockBox, secret []byte) error {
	if !bytes.Equal(HashSecret(secret), box.LockHash) {
		return errors.Wrap(ErrBadSecret, "hash mismatch")
	}
	return nil
}

// OpenDepositHandler escrows the funds of a depositor.
type OpenDepositHandler struct {
	auth x.Authenticator
	k    keeper
}

var _ bridge.Handler = OpenDepositHandler{}

func (h OpenDepositHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

// Deliver pulls the amount from the depositor into the deposit escrow. The
// id of the new lock-box is returned as data.
func (h OpenDepositHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, asset, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.k.port.TransferIn(db, asset.Ticker, msg.Sender, EscrowAddress(msg.ID), msg.Amount); err != nil {
		return nil, err
	}
	box := LockBox{
		Metadata:  &bridge.Metadata{Schema: 1},
		State:     Open,
		AssetID:   msg.AssetID,
		Amount:    msg.Amount,
		SwapFee:   msg.SwapFee,
		TxFee:     msg.TxFee,
		Sender:    msg.Sender,
		Receiver:  msg.Receiver,
		LockHash:  msg.LockHash,
		CreatedAt: now,
	}
	if err := h.k.deposits.Put(db, msg.ID, &box); err != nil {
		return nil, errors.Wrap(err, "store deposit")
	}
	bridge.GetLogger(ctx).Info("deposit opened", "id", msg.ID, "sender", msg.Sender, "amount", msg.Amount, "ticker", asset.Ticker)
	return &bridge.DeliverResult{Data: msg.ID}, nil
}

func (h OpenDepositHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*OpenDepositMsg, *Asset, error) {
	var msg OpenDepositMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if err := requireActive(conf); err != nil {
		return nil, nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Sender, "depositor"); err != nil {
		return nil, nil, err
	}
	if msg.AssetID, err = resolveAsset(conf, msg.AssetID); err != nil {
		return nil, nil, err
	}
	asset, err := h.k.asset(db, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireUnused(db, h.k.deposits, msg.ID); err != nil {
		return nil, nil, err
	}
	if err := h.k.admit(db, msg.AssetID, msg.Amount); err != nil {
		return nil, nil, err
	}
	return &msg, asset, nil
}

// OpenWithdrawHandler pledges pool liquidity to a counterpart deposit.
type OpenWithdrawHandler struct {
	access Access
	k      keeper
}

var _ bridge.Handler = OpenWithdrawHandler{}

func (h OpenWithdrawHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

// Deliver stores the withdraw and reserves its amount in the pool. No funds
// move until the withdraw is closed.
func (h OpenWithdrawHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.k.reserve(db, msg.AssetID, msg.Amount); err != nil {
		return nil, err
	}
	box := LockBox{
		Metadata:  &bridge.Metadata{Schema: 1},
		State:     Open,
		AssetID:   msg.AssetID,
		Amount:    msg.Amount,
		SwapFee:   msg.SwapFee,
		TxFee:     msg.TxFee,
		Sender:    msg.Sender,
		Receiver:  msg.Receiver,
		LockHash:  msg.LockHash,
		CreatedAt: now,
	}
	if err := h.k.withdraws.Put(db, msg.ID, &box); err != nil {
		return nil, errors.Wrap(err, "store withdraw")
	}
	bridge.GetLogger(ctx).Info("withdraw opened", "id", msg.ID, "receiver", msg.Receiver, "amount", msg.Amount)
	return &bridge.DeliverResult{Data: msg.ID}, nil
}

func (h OpenWithdrawHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*OpenWithdrawMsg, error) {
	var msg OpenWithdrawMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if err := requireActive(conf); err != nil {
		return nil, err
	}
	if _, err := h.access.Require(ctx, db, CapManager); err != nil {
		return nil, err
	}
	if msg.AssetID, err = resolveAsset(conf, msg.AssetID); err != nil {
		return nil, err
	}
	if _, err := h.k.asset(db, msg.AssetID); err != nil {
		return nil, err
	}
	if err := requireUnused(db, h.k.withdraws, msg.ID); err != nil {
		return nil, err
	}
	if err := h.k.requireFree(db, msg.AssetID, msg.Amount); err != nil {
		return nil, err
	}
	if err := h.k.admit(db, msg.AssetID, msg.Amount); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CloseWithdrawHandler pays a withdraw out to its receiver. Anybody knowing
// the secret can close a withdraw.
type CloseWithdrawHandler struct {
	k keeper
}

var _ bridge.Handler = CloseWithdrawHandler{}

func (h CloseWithdrawHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

// Deliver pays the amount less fees from the pool to the receiver and
// releases the reservation. Fees are credited to the fee beneficiary only
// when this ledger collects fees, otherwise they remain in the pool.
func (h CloseWithdrawHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, box, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	asset, err := h.k.asset(db, box.AssetID)
	if err != nil {
		return nil, err
	}
	payout, err := box.Payout()
	if err != nil {
		return nil, err
	}
	if err := h.k.admit(db, box.AssetID, box.Amount); err != nil {
		return nil, err
	}
	if !payout.IsZero() {
		if err := h.k.port.TransferOut(db, asset.Ticker, PoolAddress(box.AssetID), box.Receiver, payout); err != nil {
			return nil, err
		}
	}
	if err := h.k.count(db, box.AssetID, box.Amount); err != nil {
		return nil, err
	}
	if err := h.k.release(db, box.AssetID, box.Amount); err != nil {
		return nil, err
	}
	if conf.CollectFeeHere {
		fee, err := box.Fee()
		if err != nil {
			return nil, err
		}
		if err := h.k.credit(db, box.AssetID, conf.FeeBeneficiary, fee); err != nil {
			return nil, errors.Wrap(err, "credit fee")
		}
	}
	box.State = Closed
	box.Secret = msg.Secret
	if err := h.k.withdraws.Put(db, msg.ID, box); err != nil {
		return nil, errors.Wrap(err, "store withdraw")
	}
	bridge.GetLogger(ctx).Info("withdraw closed", "id", msg.ID, "receiver", box.Receiver, "payout", payout)
	return &bridge.DeliverResult{}, nil
}

func (h CloseWithdrawHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*CloseWithdrawMsg, *LockBox, *Configuration, error) {
	var msg CloseWithdrawMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := requireActive(conf); err != nil {
		return nil, nil, nil, err
	}
	box, err := loadBox(db, h.k.withdraws, msg.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := requireOpen(box.State); err != nil {
		return nil, nil, nil, err
	}
	if err := requireSecret(box, msg.Secret); err != nil {
		return nil, nil, nil, err
	}
	return &msg, box, conf, nil
}

// CloseDepositHandler moves escrowed funds of a deposit into the pool once
// the secret was revealed on the counterpart ledger.
type CloseDepositHandler struct {
	access Access
	k      keeper
}

var _ bridge.Handler = CloseDepositHandler{}

func (h CloseDepositHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

// Deliver moves the escrow into the pool. The owner is credited with the
// amount less fees and the fee beneficiary with the fees when this ledger
// collects fees. Otherwise the owner is credited with the whole amount.
func (h CloseDepositHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, box, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	asset, err := h.k.asset(db, box.AssetID)
	if err != nil {
		return nil, err
	}
	if err := h.k.admit(db, box.AssetID, box.Amount); err != nil {
		return nil, err
	}
	if err := h.k.port.TransferOut(db, asset.Ticker, EscrowAddress(msg.ID), PoolAddress(box.AssetID), box.Amount); err != nil {
		return nil, err
	}
	if err := h.k.count(db, box.AssetID, box.Amount); err != nil {
		return nil, err
	}
	ownerShare := box.Amount
	if conf.CollectFeeHere {
		fee, err := box.Fee()
		if err != nil {
			return nil, err
		}
		if err := h.k.credit(db, box.AssetID, conf.FeeBeneficiary, fee); err != nil {
			return nil, errors.Wrap(err, "credit fee")
		}
		if ownerShare, err = box.Payout(); err != nil {
			return nil, err
		}
	}
	if err := h.k.credit(db, box.AssetID, conf.Owner, ownerShare); err != nil {
		return nil, errors.Wrap(err, "credit owner")
	}
	box.State = Closed
	box.Secret = msg.Secret
	if err := h.k.deposits.Put(db, msg.ID, box); err != nil {
		return nil, errors.Wrap(err, "store deposit")
	}
	bridge.GetLogger(ctx).Info("deposit closed", "id", msg.ID, "amount", box.Amount)
	return &bridge.DeliverResult{}, nil
}

func (h CloseDepositHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*CloseDepositMsg, *LockBox, *Configuration, error) {
	var msg CloseDepositMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := requireActive(conf); err != nil {
		return nil, nil, nil, err
	}
	if _, err := h.access.Require(ctx, db, CapManager); err != nil {
		return nil, nil, nil, err
	}
	box, err := loadBox(db, h.k.deposits, msg.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := requireOpen(box.State); err != nil {
		return nil, nil, nil, err
	}
	if err := requireSecret(box, msg.Secret); err != nil {
		return nil, nil, nil, err
	}
	return &msg, box, conf, nil
}

// ExpireDepositHandler refunds a deposit that was not closed in time.
type ExpireDepositHandler struct {
	auth x.Authenticator
	k    keeper
}

var _ bridge.Handler = ExpireDepositHandler{}

func (h ExpireDepositHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h ExpireDepositHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, box, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	asset, err := h.k.asset(db, box.AssetID)
	if err != nil {
		return nil, err
	}
	if err := h.k.port.TransferOut(db, asset.Ticker, EscrowAddress(msg.ID), box.Sender, box.Amount); err != nil {
		return nil, err
	}
	box.State = Expired
	if err := h.k.deposits.Put(db, msg.ID, box); err != nil {
		return nil, errors.Wrap(err, "store deposit")
	}
	bridge.GetLogger(ctx).Info("deposit expired", "id", msg.ID, "sender", box.Sender)
	return &bridge.DeliverResult{}, nil
}

func (h ExpireDepositHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*ExpireDepositMsg, *LockBox, error) {
	var msg ExpireDepositMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	box, err := loadBox(db, h.k.deposits, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, box.Sender, "depositor"); err != nil {
		return nil, nil, err
	}
	if err := requireOpen(box.State); err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if err := requireTimedOut(ctx, box, conf.DepositTimeLock); err != nil {
		return nil, nil, err
	}
	return &msg, box, nil
}

// requireTimedOut fails with ErrNotYetExpired unless the time lock of the
// box has passed. The current time lock is used, so a change of the policy
// applies to boxes already open.
func requireTimedOut(ctx bridge.Context, box *LockBox, lock bridge.Seconds) error {
	deadline := box.CreatedAt.Add(lock.Duration())
	if !bridge.IsExpired(ctx, deadline) {
		return errors.Wrapf(ErrNotYetExpired, "expires at %s", deadline)
	}
	return nil
}

// ExpireWithdrawHandler releases the reservation of a withdraw that was not
// closed in time.
type ExpireWithdrawHandler struct {
	access Access
	k      keeper
}

var _ bridge.Handler = ExpireWithdrawHandler{}

func (h ExpireWithdrawHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h ExpireWithdrawHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, box, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.k.release(db, box.AssetID, box.Amount); err != nil {
		return nil, err
	}
	box.State = Expired
	if err := h.k.withdraws.Put(db, msg.ID, box); err != nil {
		return nil, errors.Wrap(err, "store withdraw")
	}
	bridge.GetLogger(ctx).Info("withdraw expired", "id", msg.ID)
	return &bridge.DeliverResult{}, nil
}

func (h ExpireWithdrawHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*ExpireWithdrawMsg, *LockBox, error) {
	var msg ExpireWithdrawMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.access.Require(ctx, db, CapManager); err != nil {
		return nil, nil, err
	}
	box, err := loadBox(db, h.k.withdraws, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireOpen(box.State); err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if err := requireTimedOut(ctx, box, conf.WithdrawTimeLock); err != nil {
		return nil, nil, err
	}
	return &msg, box, nil
}
