// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
)

// messageSignatureHeader is the prefix every signed challenge is framed with.
// Signatures produced by standard wallet signmessage tooling use the same
// framing, so those wallets can sign challenges directly.
const messageSignatureHeader = "Bitcoin Signed Message:\n"

// MessageHash returns the digest that is signed for the given message: the
// double SHA-256 of the varstring-framed header and message.
func MessageHash(message string) []byte {
	var buf bytes.Buffer
	_ = wire.WriteVarString(&buf, 0, messageSignatureHeader)
	_ = wire.WriteVarString(&buf, 0, message)
	return chainhash.DoubleHashB(buf.Bytes())
}

// VerifySignature reports whether signature is a valid compact signature of
// message produced by the key behind address. Any failure, including a fault
// in the underlying recovery, is reported as a signature-invalid error - never
// as a panic and never as success.
func VerifySignature(message, address, signature string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.SignatureInvalid.WithFormat("verify signature: %v", r)
		}
	}()

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return errors.SignatureInvalid.WithFormat("decode signature: %w", err)
	}

	pub, compressed, err := btcec.RecoverCompact(btcec.S256(), sig, MessageHash(message))
	if err != nil {
		return errors.SignatureInvalid.WithFormat("recover public key: %w", err)
	}

	derived, err := AddressForKey(pub, compressed)
	if err != nil {
		return errors.SignatureInvalid.Wrap(err)
	}
	if derived != address {
		return errors.SignatureInvalid.With("signature does not match address")
	}
	return nil
}

// AddressForKey derives the pay-to-pubkey-hash address of a public key.
func AddressForKey(pub *btcec.PublicKey, compressed bool) (string, error) {
	var serialized []byte
	if compressed {
		serialized = pub.SerializeCompressed()
	} else {
		serialized = pub.SerializeUncompressed()
	}

	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(serialized), &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("derive address: %v", err)
	}
	return addr.EncodeAddress(), nil
}

// SignMessage signs a message with the given key and returns the base64
// compact signature. The compressed flag selects which serialization of the
// public key the address commits to.
func SignMessage(priv *btcec.PrivateKey, message string, compressed bool) (string, error) {
	sig, err := btcec.SignCompact(btcec.S256(), priv, MessageHash(message), compressed)
	if err != nil {
		return "", fmt.Errorf("sign message: %v", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}
