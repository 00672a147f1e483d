package ledger

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/crypto"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/x/cash"
	"github.com/iov-one/bridge/x/lockbox"
	"github.com/iov-one/bridge/x/sigs"
)

var (
	_ bridge.Tx     = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// msgs maps a message path to a constructor of an empty message.
var msgs = map[string]func() bridge.Msg{}

func registerMsgs(fns ...func() bridge.Msg) {
	for _, fn := range fns {
		path := fn().Path()
		if _, ok := msgs[path]; ok {
			panic("duplicated message path " + path)
		}
		msgs[path] = fn
	}
}

func init() {
	registerMsgs(
		func() bridge.Msg { return &cash.SendMsg{} },

		func() bridge.Msg { return &lockbox.OpenDepositMsg{} },
		func() bridge.Msg { return &lockbox.OpenWithdrawMsg{} },
		func() bridge.Msg { return &lockbox.CloseDepositMsg{} },
		func() bridge.Msg { return &lockbox.CloseWithdrawMsg{} },
		func() bridge.Msg { return &lockbox.ExpireDepositMsg{} },
		func() bridge.Msg { return &lockbox.ExpireWithdrawMsg{} },
		func() bridge.Msg { return &lockbox.IncreaseLiquidityMsg{} },
		func() bridge.Msg { return &lockbox.DecreaseLiquidityMsg{} },
		func() bridge.Msg { return &lockbox.AddManagerMsg{} },
		func() bridge.Msg { return &lockbox.RemoveManagerMsg{} },
		func() bridge.Msg { return &lockbox.RenounceManagerMsg{} },
		func() bridge.Msg { return &lockbox.TransferOwnershipMsg{} },
		func() bridge.Msg { return &lockbox.SetFeeBeneficiaryMsg{} },
		func() bridge.Msg { return &lockbox.SetActiveMsg{} },
		func() bridge.Msg { return &lockbox.RegisterAssetMsg{} },
		func() bridge.Msg { return &lockbox.ChangeTimeLockMsg{} },
		func() bridge.Msg { return &lockbox.SetSwapLimitMsg{} },
		func() bridge.Msg { return &lockbox.ResetTodaySwapAmountMsg{} },
	)
}

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg bridge.Msg) (*Tx, error) {
	if _, ok := msgs[msg.Path()]; !ok {
		return nil, errors.Wrapf(errors.ErrType, "unsupported message %q", msg.Path())
	}
	raw, err := bridge.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Tx{Path: msg.Path(), Msg: raw}, nil
}

// DecodeTx parses a serialized transaction.
func DecodeTx(raw []byte) (*Tx, error) {
	var tx Tx
	if err := bridge.Unmarshal(raw, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetMsg decodes the message using the constructor registered for its path.
func (tx *Tx) GetMsg() (bridge.Msg, error) {
	fn, ok := msgs[tx.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown message path %q", tx.Path)
	}
	msg := fn()
	if err := bridge.Unmarshal(tx.Msg, msg); err != nil {
		return nil, errors.Wrap(err, tx.Path)
	}
	return msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Path: tx.Path, Msg: tx.Msg}
	return bridge.Marshal(&unsigned)
}

// Sign appends a signature created with given key and nonce.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
