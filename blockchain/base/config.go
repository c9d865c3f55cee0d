package base

import (
	"time"

	"go.uber.org/zap"
)

// Config captures the settings shared by every call to a TRON full node.
type Config struct {
	FullHost string // e.g. https://api.shasta.trongrid.io
	APIKey   string
	Timeout  time.Duration
	// MaxResponseSize bounds how much of a response body is read (default: 10MB).
	MaxResponseSize int64
	Logger          *zap.Logger
}
