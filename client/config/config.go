package config

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/llakterian/FTkn-d/types"
)

// Network names a TRON network preset.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkShasta  Network = "shasta"
	NetworkNile    Network = "nile"
)

var networkHosts = map[Network]string{
	NetworkMainnet: "https://api.trongrid.io",
	NetworkShasta:  "https://api.shasta.trongrid.io",
	NetworkNile:    "https://nile.trongrid.io",
}

var explorerHosts = map[Network]string{
	NetworkMainnet: "https://tronscan.org",
	NetworkShasta:  "https://shasta.tronscan.org",
	NetworkNile:    "https://nile.tronscan.org",
}

// FullHost returns the full node endpoint of the preset.
func (n Network) FullHost() (string, bool) {
	h, ok := networkHosts[Network(strings.ToLower(string(n)))]
	return h, ok
}

// ExplorerTxURL returns the TronScan link for txID on this network.
func (n Network) ExplorerTxURL(txID string) string {
	host, ok := explorerHosts[Network(strings.ToLower(string(n)))]
	if !ok {
		host = explorerHosts[NetworkMainnet]
	}
	return host + "/#/transaction/" + txID
}

// Config holds all configuration for the transfer client. It is built once at
// program start and passed down explicitly.
type Config struct {
	// Chain connection
	Network  Network
	FullHost string // overrides the Network preset when set
	APIKey   string // TronGrid API key, sent as TRON-PRO-API-KEY

	// Account settings
	PrivateKey string // hex encoded secp256k1 key of the sender

	// Transfer / mint parameters
	Receiver        string   // base58 recipient of a single transfer
	Recipients      []string // base58 recipients of a batch mint
	Amount          int64    // smallest unit (sun for TRX, token base units for mint)
	FeeLimit        int64    // sun
	ContractAddress string   // TRC-20 contract used by mint

	// Timeouts
	RequestTimeout time.Duration

	// WaitTx controls transaction confirmation behaviour.
	WaitTx WaitTxConfig

	// Logger is optional; when nil a no-op logger is used.
	Logger *zap.Logger
}

// WaitTxConfig configures how the client waits for confirmation depth.
type WaitTxConfig struct {
	// Confirmations is the number of blocks that must be built on top of the
	// inclusion block.
	Confirmations int64

	// PollInterval is the wait between two polling attempts.
	PollInterval time.Duration
	// PollMaxRetries limits the number of polling attempts.
	PollMaxRetries int
	// PollBackoffMultiplier > 1 enables exponential growth for poll intervals.
	PollBackoffMultiplier float64
	// PollBackoffMaxInterval caps the exponential backoff delay (0 => unlimited).
	PollBackoffMaxInterval time.Duration
	// PollBackoffJitter randomizes delays (0..1) to avoid synced retries.
	PollBackoffJitter float64
}

// Validate checks if the configuration is valid and populates defaults.
func (c *Config) Validate() error {
	if c.Network == "" {
		c.Network = NetworkShasta
	}
	c.Network = Network(strings.ToLower(string(c.Network)))
	if c.FullHost == "" {
		host, ok := c.Network.FullHost()
		if !ok {
			return fmt.Errorf("%w: unknown network %q", types.ErrInvalidConfig, c.Network)
		}
		c.FullHost = host
	}
	c.FullHost = strings.TrimRight(c.FullHost, "/")
	if c.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", types.ErrInvalidConfig)
	}
	if c.FeeLimit < 0 {
		return fmt.Errorf("%w: fee_limit must not be negative", types.ErrInvalidConfig)
	}

	// Set defaults
	if c.Amount == 0 {
		c.Amount = DefaultAmount
	}
	if c.FeeLimit == 0 {
		c.FeeLimit = DefaultFeeLimit
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	ApplyWaitTxDefaults(&c.WaitTx)

	return nil
}

// ExplorerTxURL returns the TronScan link for txID on the configured network.
func (c *Config) ExplorerTxURL(txID string) string {
	return c.Network.ExplorerTxURL(txID)
}

const (
	// DefaultAmount is 1 TRX expressed in sun.
	DefaultAmount int64 = 1_000_000
	// DefaultFeeLimit is 100 TRX expressed in sun.
	DefaultFeeLimit int64 = 100_000_000
	// DefaultConfirmations is the depth after which TRON blocks are
	// irreversible (solidified by 2/3+1 of the 27 super representatives).
	DefaultConfirmations int64 = 19
)

// Default returns a configuration with sensible defaults for the Shasta testnet.
// FullHost is left empty so that Validate resolves it from Network.
func Default() Config {
	return Config{
		Network:        NetworkShasta,
		Amount:         DefaultAmount,
		FeeLimit:       DefaultFeeLimit,
		RequestTimeout: 10 * time.Second,
		WaitTx:         DefaultWaitTxConfig(),
	}
}

// DefaultWaitTxConfig returns recommended defaults for wait-tx behaviour.
func DefaultWaitTxConfig() WaitTxConfig {
	return WaitTxConfig{
		Confirmations:          DefaultConfirmations,
		PollInterval:           3 * time.Second,
		PollMaxRetries:         100,
		PollBackoffMultiplier:  1,
		PollBackoffMaxInterval: 0,
		PollBackoffJitter:      0,
	}
}

// ApplyWaitTxDefaults normalizes zero or negative values using defaults.
func ApplyWaitTxDefaults(cfg *WaitTxConfig) {
	if cfg == nil {
		return
	}
	def := DefaultWaitTxConfig()

	if cfg.Confirmations <= 0 {
		cfg.Confirmations = def.Confirmations
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.PollMaxRetries <= 0 {
		cfg.PollMaxRetries = def.PollMaxRetries
	}
	if cfg.PollBackoffMultiplier <= 0 {
		cfg.PollBackoffMultiplier = def.PollBackoffMultiplier
	}
	if cfg.PollBackoffMaxInterval < 0 {
		cfg.PollBackoffMaxInterval = 0
	}
	if cfg.PollBackoffJitter < 0 {
		cfg.PollBackoffJitter = 0
	}
}
