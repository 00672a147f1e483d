package lockbox

import (
	"bytes"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/orm"
)

var _ orm.Model = (*LockBox)(nil)

// Validate ensures the LockBox is valid. Only the lifecycle states can be
// persisted.
func (b *LockBox) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", b.Metadata.Validate())
	switch b.State {
	case Open:
		if len(b.Secret) != 0 {
			errs = errors.AppendField(errs, "Secret", errors.Wrap(errors.ErrState, "open lock-box must not hold a secret"))
		}
	case Closed:
		if !bytes.Equal(HashSecret(b.Secret), b.LockHash) {
			errs = errors.AppendField(errs, "Secret", ErrBadSecret)
		}
	case Expired:
	default:
		errs = errors.AppendField(errs, "State", errors.Wrapf(errors.ErrState, "cannot persist %s", b.State))
	}
	errs = errors.AppendField(errs, "AssetID", validateID("asset id", b.AssetID))
	errs = errors.AppendField(errs, "LockHash", validateID("lock hash", b.LockHash))
	errs = errors.AppendField(errs, "Amount", validateAmounts(b.Amount, b.SwapFee, b.TxFee))
	errs = errors.AppendField(errs, "Sender", b.Sender.Validate())
	errs = errors.AppendField(errs, "Receiver", b.Receiver.Validate())
	if b.CreatedAt.IsZero() {
		errs = errors.AppendField(errs, "CreatedAt", errors.Wrap(errors.ErrEmpty, "required"))
	}
	return errs
}

// Payout returns the amount paid to the receiver when the lock-box closes.
func (b *LockBox) Payout() (coin.Amount, error) {
	fee, err := b.Fee()
	if err != nil {
		return nil, err
	}
	payout, err := b.Amount.Sub(fee)
	if err != nil {
		return nil, errors.Wrapf(ErrFeeExceedsAmount, "fee %s, amount %s", fee, b.Amount)
	}
	return payout, nil
}

// Fee returns the total fee charged when the lock-box closes.
func (b *LockBox) Fee() (coin.Amount, error) {
	return coin.Sum(b.SwapFee, b.TxFee)
}

// validateAmounts requires a positive amount that covers both fees.
func validateAmounts(amount, swapFee, txFee coin.Amount) error {
	if err := coin.Amount(amount).Validate(); err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "must be greater than zero")
	}
	fee, err := coin.Sum(swapFee, txFee)
	if err != nil {
		return err
	}
	if !amount.IsGTE(fee) {
		return errors.Wrapf(ErrFeeExceedsAmount, "fee %s, amount %s", fee, amount)
	}
	return nil
}

// NewDepositBucket returns the bucket of deposit lock-boxes, indexed by the
// hash lock and by the depositor.
func NewDepositBucket() orm.ModelBucket {
	return orm.NewModelBucket("deposit", &LockBox{},
		orm.WithIndex("lock_hash", lockHashIndex, false),
		orm.WithIndex("sender", senderIndex, false),
	)
}

// NewWithdrawBucket returns the bucket of withdraw lock-boxes, indexed by the
// hash lock and by the receiver.
func NewWithdrawBucket() orm.ModelBucket {
	return orm.NewModelBucket("withdraw", &LockBox{},
		orm.WithIndex("lock_hash", lockHashIndex, false),
		orm.WithIndex("receiver", receiverIndex, false),
	)
}

func asLockBox(m orm.Model) (*LockBox, error) {
	b, ok := m.(*LockBox)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return b, nil
}

func lockHashIndex(m orm.Model) ([]byte, error) {
	b, err := asLockBox(m)
	if err != nil {
		return nil, err
	}
	return b.LockHash, nil
}

func senderIndex(m orm.Model) ([]byte, error) {
	b, err := asLockBox(m)
	if err != nil {
		return nil, err
	}
	return b.Sender, nil
}

func receiverIndex(m orm.Model) ([]byte, error) {
	b, err := asLockBox(m)
	if err != nil {
		return nil, err
	}
	return b.Receiver, nil
}

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	if !coin.IsTicker(a.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", a.Ticker))
	}
	return errs
}

// NewAssetBucket returns the bucket of registered assets keyed by asset id.
func NewAssetBucket() orm.ModelBucket {
	return orm.NewModelBucket("asset", &Asset{})
}

var _ orm.Model = (*Pool)(nil)

func (p *Pool) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	return errors.AppendField(errs, "Reserved", p.Reserved.Validate())
}

// NewPoolBucket returns the bucket of pool reservations keyed by asset id.
func NewPoolBucket() orm.ModelBucket {
	return orm.NewModelBucket("pool", &Pool{})
}

var _ orm.Model = (*LiquidityAccount)(nil)

func (l *LiquidityAccount) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", l.Metadata.Validate())
	errs = errors.AppendField(errs, "AssetID", validateID("asset id", l.AssetID))
	errs = errors.AppendField(errs, "Provider", l.Provider.Validate())
	return errors.AppendField(errs, "Amount", l.Amount.Validate())
}

// NewLiquidityBucket returns the bucket of provider balances keyed by
// asset id and provider address.
func NewLiquidityBucket() orm.ModelBucket {
	return orm.NewModelBucket("liquidity", &LiquidityAccount{},
		orm.WithIndex("provider", providerIndex, false),
	)
}

func liquidityKey(assetID []byte, provider bridge.Address) []byte {
	key := make([]byte, 0, len(assetID)+len(provider))
	key = append(key, assetID...)
	return append(key, provider...)
}

func providerIndex(m orm.Model) ([]byte, error) {
	l, ok := m.(*LiquidityAccount)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return l.Provider, nil
}

var _ orm.Model = (*Manager)(nil)

func (m *Manager) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.AppendField(errs, "Address", m.Address.Validate())
}

// NewManagerBucket returns the bucket of the manager set keyed by address.
func NewManagerBucket() orm.ModelBucket {
	return orm.NewModelBucket("manager", &Manager{})
}

var _ orm.Model = (*SwapLimit)(nil)

func (s *SwapLimit) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "DailyCap", s.DailyCap.Validate())
	return errors.AppendField(errs, "SwappedToday", s.SwappedToday.Validate())
}

// NewSwapLimitBucket returns the bucket of governor states keyed by asset id.
func NewSwapLimitBucket() orm.ModelBucket {
	return orm.NewModelBucket("swaplimit", &SwapLimit{})
}
