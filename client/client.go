package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/llakterian/FTkn-d/blockchain"
	"github.com/llakterian/FTkn-d/blockchain/base"
	waittx "github.com/llakterian/FTkn-d/internal/wait-tx"
	sdkcrypto "github.com/llakterian/FTkn-d/pkg/crypto"
	"github.com/llakterian/FTkn-d/types"
)

// trxDecimals is the number of decimals between sun and TRX.
const trxDecimals = 6

// Client submits transfers and mints and waits for their confirmation.
type Client struct {
	// High-level modules
	Blockchain *blockchain.Client

	// Configuration
	config *Config
	signer *sdkcrypto.Signer
	waiter *waittx.Waiter
	logger *zap.Logger
}

// New creates a new client from an explicit configuration.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	// Apply options
	for _, opt := range opts {
		opt(&cfg)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Without a private key the client is read-only: Watch and Balance work,
	// Transfer and Mint are rejected.
	var (
		signer      *sdkcrypto.Signer
		chainSigner blockchain.Signer
	)
	if cfg.PrivateKey != "" {
		s, err := sdkcrypto.NewSigner(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
		}
		signer, chainSigner = s, s
	}

	logger := cfg.Logger.With(zap.String("network", string(cfg.Network)))

	blockchainClient, err := blockchain.New(base.Config{
		FullHost: cfg.FullHost,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.RequestTimeout,
		Logger:   logger,
	}, chainSigner)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blockchain client: %w", err)
	}

	waiter, err := waittx.New(cfg.WaitTx, blockchainClient, logger)
	if err != nil {
		if closeErr := blockchainClient.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize waiter: %w; also failed to close blockchain client: %v", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize waiter: %w", err)
	}

	return &Client{
		Blockchain: blockchainClient,
		config:     &cfg,
		signer:     signer,
		waiter:     waiter,
		logger:     logger,
	}, nil
}

// Close releases all resources
func (c *Client) Close() error {
	if c.Blockchain != nil {
		if err := c.Blockchain.Close(); err != nil {
			return fmt.Errorf("blockchain close: %w", err)
		}
	}
	return nil
}

// Config returns the client configuration
func (c *Client) Config() Config {
	return *c.config
}

// Address returns the sender address, or "" for a read-only client.
func (c *Client) Address() string {
	if c.signer == nil {
		return ""
	}
	return c.signer.Address()
}

func (c *Client) requireSigner(op string) error {
	if c.signer == nil {
		return fmt.Errorf("%w: private key is required to %s", types.ErrInvalidConfig, op)
	}
	return nil
}

// Balance returns the TRX balance of address in sun.
func (c *Client) Balance(ctx context.Context, address string) (int64, error) {
	return c.Blockchain.GetBalance(ctx, address)
}

// Transfer sends amount sun to the recipient and waits for the configured
// confirmation depth. The returned result is populated as far as the flow got,
// also when an error is returned.
func (c *Client) Transfer(ctx context.Context, to string, amount int64) (*types.TransferResult, error) {
	from := c.Address()
	res := &types.TransferResult{From: from, To: to, Amount: amount}
	if err := c.requireSigner("transfer"); err != nil {
		return res, err
	}

	c.logBalance(ctx, "sender", from)

	txID, err := c.Blockchain.SubmitTransfer(ctx, to, amount)
	if err != nil {
		return res, err
	}
	res.TxID = txID
	res.ExplorerURL = c.config.ExplorerTxURL(txID)
	c.logger.Info("transfer submitted, waiting for confirmations",
		zap.String("tx_id", txID),
		zap.String("to", to),
		zap.String("amount_trx", FormatTRX(amount)))

	res.Confirmation, err = c.Watch(ctx, txID)
	if err != nil {
		return res, err
	}
	c.logger.Info("transfer fully confirmed", zap.String("tx_id", txID), zap.String("url", res.ExplorerURL))

	c.logBalance(ctx, "recipient", to)
	return res, nil
}

// Mint calls mint(recipient, amount) on the configured token contract and
// waits for the configured confirmation depth.
func (c *Client) Mint(ctx context.Context, recipient string, amount int64) (*types.MintResult, error) {
	contract := c.config.ContractAddress
	res := &types.MintResult{Contract: contract, Recipient: recipient, Amount: amount}
	if contract == "" {
		return res, fmt.Errorf("%w: contract address is required for mint", types.ErrInvalidConfig)
	}
	if err := c.requireSigner("mint"); err != nil {
		return res, err
	}

	txID, err := c.Blockchain.Contract.Mint(ctx, contract, recipient, big.NewInt(amount),
		blockchain.WithFeeLimit(c.config.FeeLimit))
	if err != nil {
		return res, err
	}
	res.TxID = txID
	res.ExplorerURL = c.config.ExplorerTxURL(txID)
	c.logger.Info("mint submitted, waiting for confirmations",
		zap.String("tx_id", txID),
		zap.String("recipient", recipient),
		zap.Int64("amount", amount))

	res.Confirmation, err = c.Watch(ctx, txID)
	if err != nil {
		return res, err
	}

	if bal, err := c.Blockchain.Contract.TokenBalance(ctx, contract, recipient); err != nil {
		c.logger.Warn("token balance unavailable", zap.String("address", recipient), zap.Error(err))
	} else {
		c.logger.Info("recipient token balance", zap.String("address", recipient), zap.String("balance", bal.String()))
	}
	return res, nil
}

// BatchMint mints amount to every recipient, one at a time: each mint is
// submitted and watched to completion before the next one starts. It stops at
// the first error and returns the results gathered so far, including the
// failed one.
func (c *Client) BatchMint(ctx context.Context, recipients []string, amount int64) ([]*types.MintResult, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: no recipients", types.ErrInvalidConfig)
	}
	if err := c.requireSigner("mint"); err != nil {
		return nil, err
	}
	results := make([]*types.MintResult, 0, len(recipients))
	for i, recipient := range recipients {
		res, err := c.Mint(ctx, recipient, amount)
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("mint %d/%d to %s: %w", i+1, len(recipients), recipient, err)
		}
	}
	return results, nil
}

// Watch waits for txID with a fresh attempt budget. It can be used to resume
// watching a transaction after a timed out Transfer or Mint.
func (c *Client) Watch(ctx context.Context, txID string) (types.Confirmation, error) {
	res, err := c.waiter.Wait(ctx, txID, 0)
	switch {
	case err == nil:
	case errors.Is(err, types.ErrTimedOut):
		c.logger.Warn("confirmation budget exhausted",
			zap.String("tx_id", txID),
			zap.Int64("depth", res.Depth),
			zap.Int("attempts", res.Attempts))
	default:
		c.logger.Error("transaction not confirmed", zap.String("tx_id", txID), zap.Error(err))
	}
	return res, err
}

func (c *Client) logBalance(ctx context.Context, role, address string) {
	bal, err := c.Balance(ctx, address)
	if err != nil {
		c.logger.Warn("balance unavailable", zap.String("role", role), zap.String("address", address), zap.Error(err))
		return
	}
	c.logger.Info("balance", zap.String("role", role), zap.String("address", address), zap.String("trx", FormatTRX(bal)))
}

// FormatTRX renders a sun amount as TRX.
func FormatTRX(sun int64) string {
	return decimal.New(sun, -trxDecimals).String()
}
