package waittx

import (
	"math"
	"math/rand"
	"time"

	clientconfig "github.com/llakterian/FTkn-d/client/config"
)

const defaultInterval = 3 * time.Second

// maxDelay keeps float64 -> time.Duration conversions from overflowing.
const maxDelay = float64(math.MaxInt64) - 2048.0

type constantBackoff struct{ every time.Duration }

func (b constantBackoff) Next(int) time.Duration { return b.every }

type exponentialBackoff struct {
	initial    time.Duration
	multiplier float64
	max        time.Duration
	jitter     float64
	randFn     func() float64
}

func (b *exponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	initial := b.initial
	if initial <= 0 {
		initial = defaultInterval
	}

	delay := float64(initial)
	if b.multiplier > 1 {
		delay *= math.Pow(b.multiplier, float64(attempt-1))
	}
	if b.max > 0 {
		delay = math.Min(delay, float64(b.max))
	}
	delay = clampDelay(delay)

	if jitter := math.Max(0, math.Min(b.jitter, 1)); jitter > 0 {
		randFn := b.randFn
		if randFn == nil {
			randFn = rand.Float64
		}
		factor := math.Max(0, 1+(randFn()*2-1)*jitter)
		delay = clampDelay(delay * factor)
	}

	if d := time.Duration(delay); d > 0 {
		return d
	}
	return time.Millisecond
}

func clampDelay(d float64) float64 {
	if d > maxDelay {
		return maxDelay
	}
	if d < 0 || math.IsNaN(d) {
		return 0
	}
	return d
}

// NewBackoff constructs a poller backoff from the WaitTx configuration.
// Without a multiplier, jitter or cap the cadence is constant.
func NewBackoff(cfg clientconfig.WaitTxConfig) Backoff {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultInterval
	}
	if cfg.PollBackoffMultiplier <= 1 && cfg.PollBackoffJitter <= 0 {
		return constantBackoff{every: interval}
	}
	return &exponentialBackoff{
		initial:    interval,
		multiplier: cfg.PollBackoffMultiplier,
		max:        cfg.PollBackoffMaxInterval,
		jitter:     cfg.PollBackoffJitter,
	}
}
