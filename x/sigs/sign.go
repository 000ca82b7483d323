package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/authlock"
	"github.com/iov-one/authlock/crypto"
	"github.com/iov-one/authlock/errors"
)

// signVersion opens the signed digest and changes with its layout.
var signVersion = []byte{0, 0xCA, 0xFE, 0}

// SignBytes returns the digest signed for a transaction. It is the sha512
// of
//
//	version (4 bytes) | len(chainID) (1 byte) | chainID | seq (8 bytes, big endian) | payload
//
// so a signature is bound to one chain and one sequence of the signer.
func SignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "negative sequence %d", seq)
	}
	if !authlock.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], uint64(seq))

	h := sha512.New()
	_, _ = h.Write(signVersion)
	_, _ = h.Write([]byte{byte(len(chainID))})
	_, _ = h.Write([]byte(chainID))
	_, _ = h.Write(seqBytes[:])
	_, _ = h.Write(payload)
	return h.Sum(nil), nil
}

// SignTx signs tx for the given chain with the signer's sequence seq.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	digest, err := SignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Sequence:  seq,
		Pubkey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}

// VerifyTxSignatures checks every signature of tx and consumes the
// sequence it was made with. The conditions of the signers are returned in
// the order of the signatures. A transaction without signatures has no
// signers.
func VerifyTxSignatures(db authlock.KVStore, tx SignedTx, chainID string) ([]authlock.Condition, error) {
	sigs := tx.GetSignatures()
	if len(sigs) == 0 {
		return nil, nil
	}
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}

	bucket := NewBucket()
	signers := make([]authlock.Condition, len(sigs))
	for i, sig := range sigs {
		signer, err := verify(db, bucket, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers[i] = signer
	}
	return signers, nil
}

func verify(db authlock.KVStore, bucket Bucket, sig *StdSignature, payload []byte, chainID string) (authlock.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	user, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	digest, err := SignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.consume(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return user.Pubkey.Condition(), nil
}
