package client

import clientconfig "github.com/llakterian/FTkn-d/client/config"

// Config re-exports the config.Config type.
type Config = clientconfig.Config

// WaitTxConfig re-exports the wait-tx config type.
type WaitTxConfig = clientconfig.WaitTxConfig

// Network re-exports the network preset type.
type Network = clientconfig.Network

// DefaultConfig mirrors config.Default.
func DefaultConfig() Config {
	return clientconfig.Default()
}

// DefaultWaitTxConfig mirrors config.DefaultWaitTxConfig.
func DefaultWaitTxConfig() WaitTxConfig {
	return clientconfig.DefaultWaitTxConfig()
}
