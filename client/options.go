package client

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	sdklog "github.com/llakterian/FTkn-d/pkg/log"
)

// Option is a function that modifies Config
type Option func(*Config)

// WithNetwork selects a network preset (mainnet, shasta, nile)
func WithNetwork(network Network) Option {
	return func(c *Config) {
		c.Network = network
	}
}

// WithFullHost overrides the full node endpoint of the network preset
func WithFullHost(host string) Option {
	return func(c *Config) {
		c.FullHost = host
	}
}

// WithAPIKey sets the TronGrid API key
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithRequestTimeout sets the per-request timeout
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithFeeLimit sets the fee limit for contract calls, in sun
func WithFeeLimit(sun int64) Option {
	return func(c *Config) {
		c.FeeLimit = sun
	}
}

// WithConfirmations sets the required confirmation depth
func WithConfirmations(blocks int64) Option {
	return func(c *Config) {
		c.WaitTx.Confirmations = blocks
	}
}

// WithPollInterval sets the wait between confirmation polls
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.WaitTx.PollInterval = interval
	}
}

// WithMaxRetries sets the maximum number of confirmation polls
func WithMaxRetries(retries int) Option {
	return func(c *Config) {
		c.WaitTx.PollMaxRetries = retries
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithPrintfLogger routes info and above to a Printf-style logger such as
// the stdlib *log.Logger.
func WithPrintfLogger(l sdklog.Logger) Option {
	return func(c *Config) {
		c.Logger = sdklog.FromPrintf(l, zapcore.InfoLevel)
	}
}

// WithPrivateKey sets the hex encoded signing key
func WithPrivateKey(hexKey string) Option {
	return func(c *Config) {
		c.PrivateKey = hexKey
	}
}

// WithContract sets the TRC-20 contract used by Mint
func WithContract(address string) Option {
	return func(c *Config) {
		c.ContractAddress = address
	}
}
