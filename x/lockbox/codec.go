package lockbox

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
)

// LockBox is a hash time-locked escrow record. Deposits and withdraws are
// stored in separate buckets using the same model.
type LockBox struct {
	Metadata  *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	State     State            `protobuf:"varint,2,opt,name=state,proto3,enum=lockbox.State" json:"state"`
	AssetID   bridge.HexBytes  `protobuf:"bytes,3,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
	Amount    coin.Amount      `protobuf:"bytes,4,opt,name=amount,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"amount"`
	SwapFee   coin.Amount      `protobuf:"bytes,5,opt,name=swap_fee,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"swap_fee"`
	TxFee     coin.Amount      `protobuf:"bytes,6,opt,name=tx_fee,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"tx_fee"`
	Sender    bridge.Address   `protobuf:"bytes,7,opt,name=sender,proto3,casttype=github.com/iov-one/bridge.Address" json:"sender,omitempty"`
	Receiver  bridge.Address   `protobuf:"bytes,8,opt,name=receiver,proto3,casttype=github.com/iov-one/bridge.Address" json:"receiver,omitempty"`
	// LockHash is the sha256 hash of the secret.
	LockHash  bridge.HexBytes  `protobuf:"bytes,9,opt,name=lock_hash,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"lock_hash,omitempty"`
	// Secret is set only when the lock-box is closed.
	Secret    bridge.HexBytes  `protobuf:"bytes,10,opt,name=secret,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"secret,omitempty"`
	// CreatedAt is the block time of the open transaction.
	CreatedAt bridge.UnixTime  `protobuf:"varint,11,opt,name=created_at,proto3,casttype=github.com/iov-one/bridge.UnixTime" json:"created_at"`
}

func (m *LockBox) Reset()         { *m = LockBox{} }
func (m *LockBox) String() string { return proto.CompactTextString(m) }
func (*LockBox) ProtoMessage()    {}

// Asset is a registered asset pool. It names the currency moved by the
// asset port.
type Asset struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker   string           `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker"`
}

func (m *Asset) Reset()         { *m = Asset{} }
func (m *Asset) String() string { return proto.CompactTextString(m) }
func (*Asset) ProtoMessage()    {}

// Pool tracks the amount pledged to open withdraws of a single asset.
type Pool struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Reserved coin.Amount      `protobuf:"bytes,2,opt,name=reserved,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"reserved"`
}

func (m *Pool) Reset()         { *m = Pool{} }
func (m *Pool) String() string { return proto.CompactTextString(m) }
func (*Pool) ProtoMessage()    {}

// LiquidityAccount is the nominal claim of a provider on the pool of an
// asset.
type LiquidityAccount struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	AssetID  bridge.HexBytes  `protobuf:"bytes,2,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
	Provider bridge.Address   `protobuf:"bytes,3,opt,name=provider,proto3,casttype=github.com/iov-one/bridge.Address" json:"provider,omitempty"`
	Amount   coin.Amount      `protobuf:"bytes,4,opt,name=amount,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"amount"`
}

func (m *LiquidityAccount) Reset()         { *m = LiquidityAccount{} }
func (m *LiquidityAccount) String() string { return proto.CompactTextString(m) }
func (*LiquidityAccount) ProtoMessage()    {}

// Manager is a member of the manager set. Membership is existence.
type Manager struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  bridge.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/bridge.Address" json:"address,omitempty"`
}

func (m *Manager) Reset()         { *m = Manager{} }
func (m *Manager) String() string { return proto.CompactTextString(m) }
func (*Manager) ProtoMessage()    {}

// SwapLimit is the daily swap governor state of an asset.
type SwapLimit struct {
	Metadata     *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Enabled      bool             `protobuf:"varint,2,opt,name=enabled,proto3" json:"enabled"`
	DailyCap     coin.Amount      `protobuf:"bytes,3,opt,name=daily_cap,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"daily_cap"`
	SwappedToday coin.Amount      `protobuf:"bytes,4,opt,name=swapped_today,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"swapped_today"`
}

func (m *SwapLimit) Reset()         { *m = SwapLimit{} }
func (m *SwapLimit) String() string { return proto.CompactTextString(m) }
func (*SwapLimit) ProtoMessage()    {}

// Configuration is the lock-box extension setup, stored as a gconf
// singleton.
type Configuration struct {
	Metadata         *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner            bridge.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/bridge.Address" json:"owner,omitempty"`
	FeeBeneficiary   bridge.Address   `protobuf:"bytes,3,opt,name=fee_beneficiary,proto3,casttype=github.com/iov-one/bridge.Address" json:"fee_beneficiary,omitempty"`
	// Active is the circuit breaker. Funds move only when set.
	Active           bool             `protobuf:"varint,4,opt,name=active,proto3" json:"active"`
	// CollectFeeHere decides if fees are credited on this ledger.
	CollectFeeHere   bool             `protobuf:"varint,5,opt,name=collect_fee_here,proto3" json:"collect_fee_here"`
	DefaultAsset     bridge.HexBytes  `protobuf:"bytes,6,opt,name=default_asset,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"default_asset,omitempty"`
	DepositTimeLock  bridge.Seconds   `protobuf:"varint,7,opt,name=deposit_time_lock,proto3,casttype=github.com/iov-one/bridge.Seconds" json:"deposit_time_lock"`
	WithdrawTimeLock bridge.Seconds   `protobuf:"varint,8,opt,name=withdraw_time_lock,proto3,casttype=github.com/iov-one/bridge.Seconds" json:"withdraw_time_lock"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// OpenDepositMsg escrows funds of the sender until the counterpart withdraw
// is closed.
type OpenDepositMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID       bridge.HexBytes  `protobuf:"bytes,2,opt,name=id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"id,omitempty"`
	AssetID  bridge.HexBytes  `protobuf:"bytes,3,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
	Amount   coin.Amount      `protobuf:"bytes,4,opt,name=amount,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"amount"`
	SwapFee  coin.Amount      `protobuf:"bytes,5,opt,name=swap_fee,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"swap_fee"`
	TxFee    coin.Amount      `protobuf:"bytes,6,opt,name=tx_fee,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"tx_fee"`
	Sender   bridge.Address   `protobuf:"bytes,7,opt,name=sender,proto3,casttype=github.com/iov-one/bridge.Address" json:"sender,omitempty"`
	Receiver bridge.Address   `protobuf:"bytes,8,opt,name=receiver,proto3,casttype=github.com/iov-one/bridge.Address" json:"receiver,omitempty"`
	LockHash bridge.HexBytes  `protobuf:"bytes,9,opt,name=lock_hash,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"lock_hash,omitempty"`
}

func (m *OpenDepositMsg) Reset()         { *m = OpenDepositMsg{} }
func (m *OpenDepositMsg) String() string { return proto.CompactTextString(m) }
func (*OpenDepositMsg) ProtoMessage()    {}

// OpenWithdrawMsg pledges pool liquidity to the receiver, matching a deposit
// on the counterpart ledger.
type OpenWithdrawMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID       bridge.HexBytes  `protobuf:"bytes,2,opt,name=id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"id,omitempty"`
	AssetID  bridge.HexBytes  `protobuf:"bytes,3,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
	Amount   coin.Amount      `protobuf:"bytes,4,opt,name=amount,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"amount"`
	SwapFee  coin.Amount      `protobuf:"bytes,5,opt,name=swap_fee,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"swap_fee"`
	TxFee    coin.Amount      `protobuf:"bytes,6,opt,name=tx_fee,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"tx_fee"`
	Sender   bridge.Address   `protobuf:"bytes,7,opt,name=sender,proto3,casttype=github.com/iov-one/bridge.Address" json:"sender,omitempty"`
	Receiver bridge.Address   `protobuf:"bytes,8,opt,name=receiver,proto3,casttype=github.com/iov-one/bridge.Address" json:"receiver,omitempty"`
	LockHash bridge.HexBytes  `protobuf:"bytes,9,opt,name=lock_hash,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"lock_hash,omitempty"`
}

func (m *OpenWithdrawMsg) Reset()         { *m = OpenWithdrawMsg{} }
func (m *OpenWithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*OpenWithdrawMsg) ProtoMessage()    {}

// CloseDepositMsg releases an escrowed deposit into the pool.
type CloseDepositMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID       bridge.HexBytes  `protobuf:"bytes,2,opt,name=id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"id,omitempty"`
	Secret   bridge.HexBytes  `protobuf:"bytes,3,opt,name=secret,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"secret,omitempty"`
}

func (m *CloseDepositMsg) Reset()         { *m = CloseDepositMsg{} }
func (m *CloseDepositMsg) String() string { return proto.CompactTextString(m) }
func (*CloseDepositMsg) ProtoMessage()    {}

// CloseWithdrawMsg pays out a withdraw to its receiver.
type CloseWithdrawMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID       bridge.HexBytes  `protobuf:"bytes,2,opt,name=id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"id,omitempty"`
	Secret   bridge.HexBytes  `protobuf:"bytes,3,opt,name=secret,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"secret,omitempty"`
}

func (m *CloseWithdrawMsg) Reset()         { *m = CloseWithdrawMsg{} }
func (m *CloseWithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*CloseWithdrawMsg) ProtoMessage()    {}

// ExpireDepositMsg refunds a timed out deposit to the depositor.
type ExpireDepositMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID       bridge.HexBytes  `protobuf:"bytes,2,opt,name=id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"id,omitempty"`
}

func (m *ExpireDepositMsg) Reset()         { *m = ExpireDepositMsg{} }
func (m *ExpireDepositMsg) String() string { return proto.CompactTextString(m) }
func (*ExpireDepositMsg) ProtoMessage()    {}

// ExpireWithdrawMsg releases the liquidity pledged to a timed out withdraw.
type ExpireWithdrawMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID       bridge.HexBytes  `protobuf:"bytes,2,opt,name=id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"id,omitempty"`
}

func (m *ExpireWithdrawMsg) Reset()         { *m = ExpireWithdrawMsg{} }
func (m *ExpireWithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*ExpireWithdrawMsg) ProtoMessage()    {}

// IncreaseLiquidityMsg moves funds of the payer into the pool and credits
// the provider.
type IncreaseLiquidityMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	AssetID  bridge.HexBytes  `protobuf:"bytes,2,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
	Payer    bridge.Address   `protobuf:"bytes,3,opt,name=payer,proto3,casttype=github.com/iov-one/bridge.Address" json:"payer,omitempty"`
	Provider bridge.Address   `protobuf:"bytes,4,opt,name=provider,proto3,casttype=github.com/iov-one/bridge.Address" json:"provider,omitempty"`
	Amount   coin.Amount      `protobuf:"bytes,5,opt,name=amount,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"amount"`
}

func (m *IncreaseLiquidityMsg) Reset()         { *m = IncreaseLiquidityMsg{} }
func (m *IncreaseLiquidityMsg) String() string { return proto.CompactTextString(m) }
func (*IncreaseLiquidityMsg) ProtoMessage()    {}

// DecreaseLiquidityMsg pays out pool funds to the provider.
type DecreaseLiquidityMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	AssetID  bridge.HexBytes  `protobuf:"bytes,2,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
	Provider bridge.Address   `protobuf:"bytes,3,opt,name=provider,proto3,casttype=github.com/iov-one/bridge.Address" json:"provider,omitempty"`
	Amount   coin.Amount      `protobuf:"bytes,4,opt,name=amount,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"amount"`
}

func (m *DecreaseLiquidityMsg) Reset()         { *m = DecreaseLiquidityMsg{} }
func (m *DecreaseLiquidityMsg) String() string { return proto.CompactTextString(m) }
func (*DecreaseLiquidityMsg) ProtoMessage()    {}

type AddManagerMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Manager  bridge.Address   `protobuf:"bytes,2,opt,name=manager,proto3,casttype=github.com/iov-one/bridge.Address" json:"manager,omitempty"`
}

func (m *AddManagerMsg) Reset()         { *m = AddManagerMsg{} }
func (m *AddManagerMsg) String() string { return proto.CompactTextString(m) }
func (*AddManagerMsg) ProtoMessage()    {}

type RemoveManagerMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Manager  bridge.Address   `protobuf:"bytes,2,opt,name=manager,proto3,casttype=github.com/iov-one/bridge.Address" json:"manager,omitempty"`
}

func (m *RemoveManagerMsg) Reset()         { *m = RemoveManagerMsg{} }
func (m *RemoveManagerMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveManagerMsg) ProtoMessage()    {}

// RenounceManagerMsg is signed by a manager leaving the manager set.
type RenounceManagerMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Manager  bridge.Address   `protobuf:"bytes,2,opt,name=manager,proto3,casttype=github.com/iov-one/bridge.Address" json:"manager,omitempty"`
}

func (m *RenounceManagerMsg) Reset()         { *m = RenounceManagerMsg{} }
func (m *RenounceManagerMsg) String() string { return proto.CompactTextString(m) }
func (*RenounceManagerMsg) ProtoMessage()    {}

type TransferOwnershipMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	NewOwner bridge.Address   `protobuf:"bytes,2,opt,name=new_owner,proto3,casttype=github.com/iov-one/bridge.Address" json:"new_owner,omitempty"`
}

func (m *TransferOwnershipMsg) Reset()         { *m = TransferOwnershipMsg{} }
func (m *TransferOwnershipMsg) String() string { return proto.CompactTextString(m) }
func (*TransferOwnershipMsg) ProtoMessage()    {}

// SetFeeBeneficiaryMsg changes the fee beneficiary. Accrued fees follow.
type SetFeeBeneficiaryMsg struct {
	Metadata    *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Beneficiary bridge.Address   `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/iov-one/bridge.Address" json:"beneficiary,omitempty"`
}

func (m *SetFeeBeneficiaryMsg) Reset()         { *m = SetFeeBeneficiaryMsg{} }
func (m *SetFeeBeneficiaryMsg) String() string { return proto.CompactTextString(m) }
func (*SetFeeBeneficiaryMsg) ProtoMessage()    {}

// SetActiveMsg flips the circuit breaker.
type SetActiveMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Active   bool             `protobuf:"varint,2,opt,name=active,proto3" json:"active"`
}

func (m *SetActiveMsg) Reset()         { *m = SetActiveMsg{} }
func (m *SetActiveMsg) String() string { return proto.CompactTextString(m) }
func (*SetActiveMsg) ProtoMessage()    {}

type RegisterAssetMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	AssetID  bridge.HexBytes  `protobuf:"bytes,2,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
	Ticker   string           `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker"`
}

func (m *RegisterAssetMsg) Reset()         { *m = RegisterAssetMsg{} }
func (m *RegisterAssetMsg) String() string { return proto.CompactTextString(m) }
func (*RegisterAssetMsg) ProtoMessage()    {}

// ChangeTimeLockMsg sets the withdraw time lock. The deposit time lock is
// always twice as long.
type ChangeTimeLockMsg struct {
	Metadata        *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WithdrawSeconds bridge.Seconds   `protobuf:"varint,2,opt,name=withdraw_seconds,proto3,casttype=github.com/iov-one/bridge.Seconds" json:"withdraw_seconds"`
}

func (m *ChangeTimeLockMsg) Reset()         { *m = ChangeTimeLockMsg{} }
func (m *ChangeTimeLockMsg) String() string { return proto.CompactTextString(m) }
func (*ChangeTimeLockMsg) ProtoMessage()    {}

type SetSwapLimitMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	AssetID  bridge.HexBytes  `protobuf:"bytes,2,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
	Enabled  bool             `protobuf:"varint,3,opt,name=enabled,proto3" json:"enabled"`
	DailyCap coin.Amount      `protobuf:"bytes,4,opt,name=daily_cap,proto3,casttype=github.com/iov-one/bridge/coin.Amount" json:"daily_cap"`
}

func (m *SetSwapLimitMsg) Reset()         { *m = SetSwapLimitMsg{} }
func (m *SetSwapLimitMsg) String() string { return proto.CompactTextString(m) }
func (*SetSwapLimitMsg) ProtoMessage()    {}

type ResetTodaySwapAmountMsg struct {
	Metadata *bridge.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	AssetID  bridge.HexBytes  `protobuf:"bytes,2,opt,name=asset_id,proto3,casttype=github.com/iov-one/bridge.HexBytes" json:"asset_id,omitempty"`
}

func (m *ResetTodaySwapAmountMsg) Reset()         { *m = ResetTodaySwapAmountMsg{} }
func (m *ResetTodaySwapAmountMsg) String() string { return proto.CompactTextString(m) }
func (*ResetTodaySwapAmountMsg) ProtoMessage()    {}
