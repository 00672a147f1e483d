/*
Package relayer moves lock-box data between two ledgers the way an off-chain
bridge operator would.

A deposit opened on the source ledger is mirrored by a withdraw of the same
id, amount and lock hash on the destination ledger. Once the receiver closes
the withdraw, the revealed secret is carried back to close the deposit. The
two ledgers share nothing except the values relayed here.
*/
package relayer

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/crypto"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/ledger"
	"github.com/iov-one/bridge/x/lockbox"
	"github.com/tendermint/tendermint/libs/log"
)

// Relayer signs with a manager key on each of the two ledgers.
type Relayer struct {
	src        *ledger.Ledger
	srcManager crypto.Signer
	dst        *ledger.Ledger
	dstManager crypto.Signer

	// assets maps a source asset id (hex) to its destination asset id. An
	// unmapped asset is withdrawn as the default asset of the destination.
	assets map[string]bridge.HexBytes
	logger log.Logger
}

// New returns a relayer from src to dst.
func New(src *ledger.Ledger, srcManager crypto.Signer, dst *ledger.Ledger, dstManager crypto.Signer) *Relayer {
	return &Relayer{
		src:        src,
		srcManager: srcManager,
		dst:        dst,
		dstManager: dstManager,
		assets:     make(map[string]bridge.HexBytes),
		logger:     log.NewNopLogger(),
	}
}

// WithLogger sets the logger.
func (r *Relayer) WithLogger(logger log.Logger) *Relayer {
	r.logger = logger.With("src", r.src.ChainID(), "dst", r.dst.ChainID())
	return r
}

// MapAsset routes deposits of srcAsset to withdraws of dstAsset.
func (r *Relayer) MapAsset(srcAsset, dstAsset []byte) {
	r.assets[bridge.HexBytes(srcAsset).String()] = dstAsset
}

// RelayDeposit opens on the destination ledger the withdraw matching an
// open deposit of the source ledger.
func (r *Relayer) RelayDeposit(id []byte) error {
	deposit, err := r.deposit(id)
	if err != nil {
		return err
	}
	if deposit.State != lockbox.Open {
		return errors.Wrapf(errors.ErrState, "deposit %X is %s", id, deposit.State)
	}
	msg := &lockbox.OpenWithdrawMsg{
		Metadata: &bridge.Metadata{Schema: 1},
		ID:       id,
		AssetID:  r.assets[deposit.AssetID.String()],
		Amount:   deposit.Amount,
		SwapFee:  deposit.SwapFee,
		TxFee:    deposit.TxFee,
		Sender:   deposit.Sender,
		Receiver: deposit.Receiver,
		LockHash: deposit.LockHash,
	}
	if _, err := r.dst.Submit(r.dstManager, msg); err != nil {
		return errors.Wrapf(err, "open withdraw %X", id)
	}
	r.logger.Info("deposit relayed", "id", bridge.HexBytes(id), "amount", deposit.Amount)
	return nil
}

// RelaySecret closes the source deposit using the secret revealed by the
// closed withdraw of the destination ledger.
func (r *Relayer) RelaySecret(id []byte) error {
	var secret bridge.HexBytes
	err := r.dst.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		secret, err = r.dst.Querier().CheckSecretKeyWithdraw(db, id)
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "withdraw %X", id)
	}
	msg := &lockbox.CloseDepositMsg{
		Metadata: &bridge.Metadata{Schema: 1},
		ID:       id,
		Secret:   secret,
	}
	if _, err := r.src.Submit(r.srcManager, msg); err != nil {
		return errors.Wrapf(err, "close deposit %X", id)
	}
	r.logger.Info("secret relayed", "id", bridge.HexBytes(id))
	return nil
}

// ExpireWithdraw releases the pool reservation of a destination withdraw
// whose time lock has passed without the secret being revealed.
func (r *Relayer) ExpireWithdraw(id []byte) error {
	msg := &lockbox.ExpireWithdrawMsg{
		Metadata: &bridge.Metadata{Schema: 1},
		ID:       id,
	}
	if _, err := r.dst.Submit(r.dstManager, msg); err != nil {
		return errors.Wrapf(err, "expire withdraw %X", id)
	}
	r.logger.Info("withdraw expired", "id", bridge.HexBytes(id))
	return nil
}

func (r *Relayer) deposit(id []byte) (*lockbox.LockBox, error) {
	var box *lockbox.LockBox
	err := r.src.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		box, err = r.src.Querier().CheckDeposit(db, id)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "deposit %X", id)
	}
	return box, nil
}
