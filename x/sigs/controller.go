package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/crypto"
	"github.com/iov-one/bridge/errors"
)

// signVersion prefixes every signed payload.
var signVersion = []byte{0, 0xB1, 0xD6, 1}

// VerifyTxSignatures verifies every signature of tx and returns the signer
// conditions in signature order. The sequence of each signer is bumped in
// db, so a caller must discard db when the transaction fails later.
func VerifyTxSignatures(db bridge.KVStore, tx SignedTx, chainID string) ([]bridge.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]bridge.Condition, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = VerifySignature(db, sig, payload, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return signers, nil
}

// VerifySignature verifies a single signature of payload and bumps the
// sequence of the signing key.
func VerifySignature(db bridge.KVStore, sig *StdSignature, payload []byte, chainID string) (bridge.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	b := NewBucket()
	user, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "bad signature of %s", user.Pubkey.Address())
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := b.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest that is signed for payload:
//
//	version (4) | len(chainID) (1) | chainID | sequence (8, big endian) | payload
//
// Binding the chain id and the sequence makes a signature valid on a single
// ledger and only once.
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "negative sequence %d", seq)
	}
	if !bridge.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	buf := make([]byte, 0, len(signVersion)+1+len(chainID)+8+len(payload))
	buf = append(buf, signVersion...)
	buf = append(buf, byte(len(chainID)))
	buf = append(buf, chainID...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(seq))
	buf = append(buf, payload...)

	digest := sha512.Sum512(buf)
	return digest[:], nil
}

// BuildSignBytesTx is BuildSignBytes for the payload of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs tx for the given chain and sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}
