package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
)

var (
	_ bridge.Msg = (*OpenDepositMsg)(nil)
	_ bridge.Msg = (*OpenWithdrawMsg)(nil)
	_ bridge.Msg = (*CloseDepositMsg)(nil)
	_ bridge.Msg = (*CloseWithdrawMsg)(nil)
	_ bridge.Msg = (*ExpireDepositMsg)(nil)
	_ bridge.Msg = (*ExpireWithdrawMsg)(nil)
	_ bridge.Msg = (*IncreaseLiquidityMsg)(nil)
	_ bridge.Msg = (*DecreaseLiquidityMsg)(nil)
	_ bridge.Msg = (*AddManagerMsg)(nil)
	_ bridge.Msg = (*RemoveManagerMsg)(nil)
	_ bridge.Msg = (*RenounceManagerMsg)(nil)
	_ bridge.Msg = (*TransferOwnershipMsg)(nil)
	_ bridge.Msg = (*SetFeeBeneficiaryMsg)(nil)
	_ bridge.Msg = (*SetActiveMsg)(nil)
	_ bridge.Msg = (*RegisterAssetMsg)(nil)
	_ bridge.Msg = (*ChangeTimeLockMsg)(nil)
	_ bridge.Msg = (*SetSwapLimitMsg)(nil)
	_ bridge.Msg = (*ResetTodaySwapAmountMsg)(nil)
)

func (OpenDepositMsg) Path() string {
	return "lockbox/open_deposit"
}

func (m *OpenDepositMsg) Validate() error {
	return validateOpen(m.Metadata, m.ID, m.AssetID, m.Amount, m.SwapFee, m.TxFee, m.Sender, m.Receiver, m.LockHash)
}

func (OpenWithdrawMsg) Path() string {
	return "lockbox/open_withdraw"
}

func (m *OpenWithdrawMsg) Validate() error {
	return validateOpen(m.Metadata, m.ID, m.AssetID, m.Amount, m.SwapFee, m.TxFee, m.Sender, m.Receiver, m.LockHash)
}

// validateOpen checks the fields shared by both open messages. An empty
// asset id selects the default asset.
func validateOpen(
	meta *bridge.Metadata,
	id, assetID []byte,
	amount, swapFee, txFee coin.Amount,
	sender, receiver bridge.Address,
	lockHash []byte,
) error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", meta.Validate())
	errs = errors.AppendField(errs, "ID", validateID("id", id))
	if len(assetID) != 0 {
		errs = errors.AppendField(errs, "AssetID", validateID("asset id", assetID))
	}
	errs = errors.AppendField(errs, "Amount", validateAmounts(amount, swapFee, txFee))
	errs = errors.AppendField(errs, "SwapFee", swapFee.Validate())
	errs = errors.AppendField(errs, "TxFee", txFee.Validate())
	errs = errors.AppendField(errs, "Sender", sender.Validate())
	errs = errors.AppendField(errs, "Receiver", receiver.Validate())
	errs = errors.AppendField(errs, "LockHash", validateID("lock hash", lockHash))
	return errs
}

func (CloseDepositMsg) Path() string {
	return "lockbox/close_deposit"
}

func (m *CloseDepositMsg) Validate() error {
	return validateClose(m.Metadata, m.ID, m.Secret)
}

func (CloseWithdrawMsg) Path() string {
	return "lockbox/close_withdraw"
}

func (m *CloseWithdrawMsg) Validate() error {
	return validateClose(m.Metadata, m.ID, m.Secret)
}

func validateClose(meta *bridge.Metadata, id, secret []byte) error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", meta.Validate())
	errs = errors.AppendField(errs, "ID", validateID("id", id))
	if len(secret) != SecretSize {
		errs = errors.AppendField(errs, "Secret", errors.Wrapf(errors.ErrInput, "must be %d bytes", SecretSize))
	}
	return errs
}

func (ExpireDepositMsg) Path() string {
	return "lockbox/expire_deposit"
}

func (m *ExpireDepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "ID", validateID("id", m.ID))
}

func (ExpireWithdrawMsg) Path() string {
	return "lockbox/expire_withdraw"
}

func (m *ExpireWithdrawMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "ID", validateID("id", m.ID))
}

func (IncreaseLiquidityMsg) Path() string {
	return "lockbox/increase_liquidity"
}

func (m *IncreaseLiquidityMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.AssetID) != 0 {
		errs = errors.AppendField(errs, "AssetID", validateID("asset id", m.AssetID))
	}
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	errs = errors.AppendField(errs, "Provider", m.Provider.Validate())
	return errors.AppendField(errs, "Amount", validatePositive(m.Amount))
}

func (DecreaseLiquidityMsg) Path() string {
	return "lockbox/decrease_liquidity"
}

func (m *DecreaseLiquidityMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.AssetID) != 0 {
		errs = errors.AppendField(errs, "AssetID", validateID("asset id", m.AssetID))
	}
	errs = errors.AppendField(errs, "Provider", m.Provider.Validate())
	return errors.AppendField(errs, "Amount", validatePositive(m.Amount))
}

func validatePositive(a coin.Amount) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsZero() {
		return errors.Wrap(errors.ErrAmount, "must be greater than zero")
	}
	return nil
}

func (AddManagerMsg) Path() string {
	return "lockbox/add_manager"
}

func (m *AddManagerMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "Manager", m.Manager.Validate())
}

func (RemoveManagerMsg) Path() string {
	return "lockbox/remove_manager"
}

func (m *RemoveManagerMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "Manager", m.Manager.Validate())
}

func (RenounceManagerMsg) Path() string {
	return "lockbox/renounce_manager"
}

func (m *RenounceManagerMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "Manager", m.Manager.Validate())
}

func (TransferOwnershipMsg) Path() string {
	return "lockbox/transfer_ownership"
}

func (m *TransferOwnershipMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "NewOwner", m.NewOwner.Validate())
}

func (SetFeeBeneficiaryMsg) Path() string {
	return "lockbox/set_fee_beneficiary"
}

func (m *SetFeeBeneficiaryMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
}

func (SetActiveMsg) Path() string {
	return "lockbox/set_active"
}

func (m *SetActiveMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

func (RegisterAssetMsg) Path() string {
	return "lockbox/register_asset"
}

func (m *RegisterAssetMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AssetID", validateID("asset id", m.AssetID))
	if !coin.IsTicker(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", m.Ticker))
	}
	return errs
}

func (ChangeTimeLockMsg) Path() string {
	return "lockbox/change_time_lock"
}

func (m *ChangeTimeLockMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "WithdrawSeconds", m.WithdrawSeconds.Validate())
}

func (SetSwapLimitMsg) Path() string {
	return "lockbox/set_swap_limit"
}

func (m *SetSwapLimitMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AssetID", validateID("asset id", m.AssetID))
	return errors.AppendField(errs, "DailyCap", m.DailyCap.Validate())
}

func (ResetTodaySwapAmountMsg) Path() string {
	return "lockbox/reset_today_swap_amount"
}

func (m *ResetTodaySwapAmountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "AssetID", validateID("asset id", m.AssetID))
}
