package crypto

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Signer holds the sender key used to sign transactions.
type Signer struct {
	key     *ecdsa.PrivateKey
	address string
}

// NewSigner loads a hex encoded secp256k1 private key ("0x" prefix optional).
func NewSigner(hexKey string) (*Signer, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("private key is required")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Signer{key: key, address: AddressFromPublicKey(&key.PublicKey)}, nil
}

// Address returns the base58check address of the signer.
func (s *Signer) Address() string {
	return s.address
}

// Sign signs the 32-byte transaction id and returns the 65-byte r||s||v
// signature as hex. v is offset by 27 the way TRON wallets encode it.
func (s *Signer) Sign(txID string) (string, error) {
	digest, err := hex.DecodeString(txID)
	if err != nil {
		return "", fmt.Errorf("decode tx id: %w", err)
	}
	if len(digest) != sha256.Size {
		return "", fmt.Errorf("tx id must be %d bytes, got %d", sha256.Size, len(digest))
	}
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return "", fmt.Errorf("sign tx: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hex.EncodeToString(sig), nil
}

// TxIDFromRawData computes the transaction id, sha256 of the serialized raw data.
func TxIDFromRawData(rawDataHex string) (string, error) {
	raw, err := hex.DecodeString(rawDataHex)
	if err != nil {
		return "", fmt.Errorf("decode raw data: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyTxID checks that txID matches the raw data returned by the node, so
// that a tampered payload is never signed.
func VerifyTxID(rawDataHex, txID string) error {
	want, err := TxIDFromRawData(rawDataHex)
	if err != nil {
		return err
	}
	if !strings.EqualFold(want, txID) {
		return fmt.Errorf("tx id mismatch: node returned %s, raw data hashes to %s", txID, want)
	}
	return nil
}

// RecoverAddress returns the address that produced sigHex over txID.
func RecoverAddress(txID, sigHex string) (string, error) {
	digest, err := hex.DecodeString(txID)
	if err != nil {
		return "", fmt.Errorf("decode tx id: %w", err)
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return "", fmt.Errorf("decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return "", fmt.Errorf("recover public key: %w", err)
	}
	return AddressFromPublicKey(pub), nil
}
