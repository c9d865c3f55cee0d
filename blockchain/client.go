package blockchain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/llakterian/FTkn-d/blockchain/base"
)

// Signer signs transaction ids on behalf of the sender account.
type Signer interface {
	Address() string
	Sign(txID string) (string, error)
}

// Client provides access to TRON chain operations
type Client struct {
	// Module-specific clients
	Account  *AccountClient
	Contract *ContractClient

	// Internal
	base   *base.Client
	signer Signer
	logger *zap.Logger
}

// New creates a new blockchain client. signer may be nil for read-only use.
func New(cfg base.Config, signer Signer) (*Client, error) {
	bc, err := base.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create full node client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		base:   bc,
		signer: signer,
		logger: logger,
	}
	c.Account = &AccountClient{base: bc}
	c.Contract = &ContractClient{client: c}
	return c, nil
}

// Close closes the blockchain client connection
func (c *Client) Close() error {
	if c.base != nil {
		return c.base.Close()
	}
	return nil
}

// FullHost returns the full node endpoint in use.
func (c *Client) FullHost() string {
	return c.base.FullHost()
}

// SenderAddress returns the signer address, or "" for a read-only client.
func (c *Client) SenderAddress() string {
	if c.signer == nil {
		return ""
	}
	return c.signer.Address()
}

// GetBalance returns the TRX balance of address in sun.
func (c *Client) GetBalance(ctx context.Context, address string) (int64, error) {
	return c.Account.GetBalance(ctx, address)
}
