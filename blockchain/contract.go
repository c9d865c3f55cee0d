package blockchain

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"

	sdkcrypto "github.com/llakterian/FTkn-d/pkg/crypto"
	"github.com/llakterian/FTkn-d/types"
)

const (
	// MintSelector is the TRC-20 style mint entry point.
	MintSelector = "mint(address,uint256)"
	// BalanceOfSelector is the TRC-20 balance query.
	BalanceOfSelector = "balanceOf(address)"
)

var (
	addressType, _ = abi.NewType("address", "", nil)
	uint256Type, _ = abi.NewType("uint256", "", nil)

	mintArgs      = abi.Arguments{{Type: addressType}, {Type: uint256Type}}
	balanceOfArgs = abi.Arguments{{Type: addressType}}
	uint256Result = abi.Arguments{{Type: uint256Type}}
)

// ContractClient provides smart contract operations
type ContractClient struct {
	client *Client
}

// Trigger builds, signs and broadcasts a state changing contract call. params
// is the ABI encoded argument tuple without selector.
func (cc *ContractClient) Trigger(ctx context.Context, contract, selector string, params []byte, opts ...CallOption) (string, error) {
	c := cc.client
	from := c.SenderAddress()
	if from == "" {
		return "", fmt.Errorf("%w: no signer configured", types.ErrSubmission)
	}
	if err := sdkcrypto.ValidateAddress(contract); err != nil {
		return "", fmt.Errorf("%w: contract: %v", types.ErrSubmission, err)
	}

	req := triggerRequest{
		OwnerAddress:     from,
		ContractAddress:  contract,
		FunctionSelector: selector,
		Parameter:        hex.EncodeToString(params),
		Visible:          true,
	}
	for _, opt := range opts {
		opt.applyToTrigger(&req)
	}

	var resp triggerResponse
	if err := c.base.Post(ctx, "/wallet/triggersmartcontract", req, &resp); err != nil {
		return "", fmt.Errorf("%w: trigger %s: %v", types.ErrSubmission, selector, err)
	}
	if !resp.Result.Result || resp.Transaction == nil {
		return "", fmt.Errorf("%w: trigger %s rejected with code %s: %s",
			types.ErrSubmission, selector, resp.Result.Code, decodeMessage(resp.Result.Message))
	}
	return c.signAndBroadcast(ctx, resp.Transaction)
}

// Mint calls mint(recipient, amount) on a TRC-20 contract the signer is
// allowed to mint on.
func (cc *ContractClient) Mint(ctx context.Context, contract, recipient string, amount *big.Int, opts ...CallOption) (string, error) {
	params, err := EncodeMintParams(recipient, amount)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrSubmission, err)
	}
	return cc.Trigger(ctx, contract, MintSelector, params, opts...)
}

// TokenBalance reads balanceOf(owner) through a constant call.
func (cc *ContractClient) TokenBalance(ctx context.Context, contract, owner string) (*big.Int, error) {
	ownerEVM, err := sdkcrypto.AddressToEVM(owner)
	if err != nil {
		return nil, err
	}
	params, err := balanceOfArgs.Pack(ownerEVM)
	if err != nil {
		return nil, fmt.Errorf("encode balanceOf: %w", err)
	}

	caller := cc.client.SenderAddress()
	if caller == "" {
		caller = owner
	}
	var resp triggerResponse
	err = cc.client.base.Post(ctx, "/wallet/triggerconstantcontract", triggerRequest{
		OwnerAddress:     caller,
		ContractAddress:  contract,
		FunctionSelector: BalanceOfSelector,
		Parameter:        hex.EncodeToString(params),
		Visible:          true,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("balanceOf: %w", err)
	}
	if !resp.Result.Result || len(resp.ConstantResult) == 0 {
		return nil, fmt.Errorf("balanceOf rejected: %s", decodeMessage(resp.Result.Message))
	}
	raw, err := hex.DecodeString(resp.ConstantResult[0])
	if err != nil {
		return nil, fmt.Errorf("decode balanceOf result: %w", err)
	}
	out, err := uint256Result.Unpack(raw)
	if err != nil {
		return nil, fmt.Errorf("unpack balanceOf result: %w", err)
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result type %T", out[0])
	}
	return balance, nil
}

// EncodeMintParams ABI encodes the (address,uint256) argument tuple of mint.
func EncodeMintParams(recipient string, amount *big.Int) ([]byte, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("mint amount must be positive")
	}
	to, err := sdkcrypto.AddressToEVM(recipient)
	if err != nil {
		return nil, err
	}
	params, err := mintArgs.Pack(to, amount)
	if err != nil {
		return nil, fmt.Errorf("encode mint params: %w", err)
	}
	return params, nil
}
