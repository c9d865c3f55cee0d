package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/llakterian/FTkn-d/types"
)

// AddressPrefix is the version byte of TRON mainnet/testnet addresses.
const AddressPrefix byte = 0x41

// AddressFromPublicKey derives the base58check TRON address of pub.
// The 20-byte body is the same Keccak-256 derived body Ethereum uses.
func AddressFromPublicKey(pub *ecdsa.PublicKey) string {
	body := crypto.PubkeyToAddress(*pub)
	return base58.CheckEncode(body.Bytes(), AddressPrefix)
}

// DecodeAddress parses a base58check ("T...") or hex ("41...") address and
// returns the 21-byte prefixed form.
func DecodeAddress(addr string) ([]byte, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("%w: empty", types.ErrInvalidAddress)
	}

	if len(addr) == 42 && strings.HasPrefix(strings.ToLower(addr), "41") {
		raw, err := hex.DecodeString(addr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidAddress, addr, err)
		}
		return raw, nil
	}

	body, version, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidAddress, addr, err)
	}
	if version != AddressPrefix || len(body) != common.AddressLength {
		return nil, fmt.Errorf("%w: %s: unexpected version 0x%x or length %d", types.ErrInvalidAddress, addr, version, len(body))
	}
	return append([]byte{version}, body...), nil
}

// ValidateAddress reports whether addr is a well-formed TRON address.
func ValidateAddress(addr string) error {
	_, err := DecodeAddress(addr)
	return err
}

// AddressToHex returns the 42-char hex form ("41...") of addr.
func AddressToHex(addr string) (string, error) {
	raw, err := DecodeAddress(addr)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// AddressToEVM returns the 20-byte body of addr as used inside ABI encoded
// contract parameters.
func AddressToEVM(addr string) (common.Address, error) {
	raw, err := DecodeAddress(addr)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(raw[1:]), nil
}
