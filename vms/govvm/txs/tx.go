// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the signed transactions of the governance VM.
package txs

import (
	"errors"
	"fmt"

	"github.com/luxfi/cache"
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
)

var (
	ErrNilTx            = errors.New("nil tx")
	ErrMissingSignature = errors.New("missing tx signature")
)

// Tx is an UnsignedTx together with its signer's signature over the unsigned
// bytes. The address recovered from the signature is the caller.
type Tx struct {
	Unsigned  UnsignedTx `serialize:"true" json:"unsignedTx"`
	Signature []byte     `serialize:"true" json:"signature"`

	id            ids.ID
	unsignedBytes []byte
	bytes         []byte
}

// NewSigned builds and signs a transaction around unsigned.
func NewSigned(unsigned UnsignedTx, key *secp256k1.PrivateKey) (*Tx, error) {
	tx := &Tx{Unsigned: unsigned}
	return tx, tx.Sign(key)
}

// Sign signs the unsigned bytes with key and initializes the tx.
func (tx *Tx) Sign(key *secp256k1.PrivateKey) error {
	unsignedBytes, err := Codec.Marshal(CodecVersion, &tx.Unsigned)
	if err != nil {
		return fmt.Errorf("couldn't marshal unsigned tx: %w", err)
	}
	sig, err := key.Sign(unsignedBytes)
	if err != nil {
		return fmt.Errorf("couldn't sign tx: %w", err)
	}
	tx.Signature = sig

	signedBytes, err := Codec.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal signed tx: %w", err)
	}
	tx.SetBytes(unsignedBytes, signedBytes)
	return nil
}

// Parse decodes a signed transaction.
func Parse(bytes []byte) (*Tx, error) {
	tx := &Tx{}
	if _, err := Codec.Unmarshal(bytes, tx); err != nil {
		return nil, fmt.Errorf("couldn't parse tx: %w", err)
	}
	if tx.Unsigned == nil {
		return nil, ErrNilTx
	}
	unsignedBytes, err := Codec.Marshal(CodecVersion, &tx.Unsigned)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal unsigned tx: %w", err)
	}
	tx.SetBytes(unsignedBytes, bytes)
	return tx, nil
}

// Initialize computes the bytes and ID of a tx that was decoded as part of a
// larger structure.
func (tx *Tx) Initialize() error {
	if tx.Unsigned == nil {
		return ErrNilTx
	}
	unsignedBytes, err := Codec.Marshal(CodecVersion, &tx.Unsigned)
	if err != nil {
		return fmt.Errorf("couldn't marshal unsigned tx: %w", err)
	}
	signedBytes, err := Codec.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal signed tx: %w", err)
	}
	tx.SetBytes(unsignedBytes, signedBytes)
	return nil
}

func (tx *Tx) SetBytes(unsignedBytes, signedBytes []byte) {
	tx.unsignedBytes = unsignedBytes
	tx.bytes = signedBytes
	tx.id = hash.ComputeHash256Array(signedBytes)
}

func (tx *Tx) ID() ids.ID            { return tx.id }
func (tx *Tx) Bytes() []byte         { return tx.bytes }
func (tx *Tx) UnsignedBytes() []byte { return tx.unsignedBytes }
func (tx *Tx) Size() int             { return len(tx.bytes) }

// SyntacticVerify checks the tx against chainID without reading state.
func (tx *Tx) SyntacticVerify(chainID ids.ID) error {
	switch {
	case tx == nil || tx.Unsigned == nil:
		return ErrNilTx
	case len(tx.Signature) == 0:
		return ErrMissingSignature
	}
	return tx.Unsigned.SyntacticVerify(chainID)
}

// SenderRecoverer recovers and caches the signer of transactions.
type SenderRecoverer struct {
	senders *cache.LRU[ids.ID, ids.ShortID]
}

func NewSenderRecoverer(size int) *SenderRecoverer {
	return &SenderRecoverer{
		senders: &cache.LRU[ids.ID, ids.ShortID]{Size: size},
	}
}

// Sender returns the address that signed tx.
func (r *SenderRecoverer) Sender(tx *Tx) (ids.ShortID, error) {
	txID := tx.ID()
	if sender, ok := r.senders.Get(txID); ok {
		return sender, nil
	}
	pk, err := secp256k1.RecoverPublicKey(tx.unsignedBytes, tx.Signature)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("couldn't recover signer of %s: %w", txID, err)
	}
	sender := pk.Address()
	r.senders.Put(txID, sender)
	return sender, nil
}
