package client

import (
	"context"
	"fmt"
)

// Factory keeps a base configuration so callers can easily create per-signer
// clients without re-specifying shared settings.
type Factory struct {
	baseCfg Config
	opts    []Option
}

// NewFactory captures the shared configuration. The base config may omit
// PrivateKey; it is supplied when creating signer-specific clients.
func NewFactory(cfg Config, opts ...Option) *Factory {
	return &Factory{
		baseCfg: cfg,
		opts:    append([]Option{}, opts...),
	}
}

// WithSigner returns a Client signing with privateKey. Extra options
// override/extend the factory defaults for this instance.
func (f *Factory) WithSigner(ctx context.Context, privateKey string, extraOpts ...Option) (*Client, error) {
	if privateKey == "" {
		return nil, fmt.Errorf("private key is required")
	}

	cfg := f.baseCfg
	cfg.PrivateKey = privateKey
	cfg.Recipients = append([]string(nil), f.baseCfg.Recipients...)

	opts := append([]Option{}, f.opts...)
	opts = append(opts, extraOpts...)

	return New(ctx, cfg, opts...)
}
