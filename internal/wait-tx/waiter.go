package waittx

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	clientconfig "github.com/llakterian/FTkn-d/client/config"
)

// Waiter applies a configured confirmation policy to any number of
// transactions. Each Wait call gets a fresh attempt budget.
type Waiter struct {
	querier Querier
	policy  Policy
	logger  *zap.Logger
}

// New creates a waiter based on the provided config and querier.
func New(cfg clientconfig.WaitTxConfig, querier Querier, logger *zap.Logger) (*Waiter, error) {
	if querier == nil {
		return nil, fmt.Errorf("querier is required")
	}

	normalized := cfg
	clientconfig.ApplyWaitTxDefaults(&normalized)

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Waiter{
		querier: querier,
		policy: Policy{
			RequiredDepth: normalized.Confirmations,
			PollInterval:  normalized.PollInterval,
			MaxAttempts:   normalized.PollMaxRetries,
			Backoff:       NewBackoff(normalized),
		},
		logger: logger,
	}, nil
}

// Policy returns the policy used by Wait.
func (w *Waiter) Policy() Policy {
	return w.policy
}

// Wait blocks until the transaction reaches the configured depth, fails, or
// the attempt budget or timeout runs out. A zero timeout means no deadline
// beyond the attempt budget.
func (w *Waiter) Wait(ctx context.Context, txID string, timeout time.Duration) (Result, error) {
	return w.WaitDepth(ctx, txID, w.policy.RequiredDepth, timeout)
}

// WaitDepth is Wait with a caller supplied confirmation depth.
func (w *Waiter) WaitDepth(ctx context.Context, txID string, depth int64, timeout time.Duration) (Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	policy := w.policy
	policy.RequiredDepth = depth

	p, err := newPoller(w.querier, policy, w.logger)
	if err != nil {
		return Result{TxID: txID}, err
	}
	w.logger.Info("waiting for confirmations",
		zap.String("tx_id", txID),
		zap.Int64("required", depth),
		zap.Int("max_attempts", policy.MaxAttempts))
	return p.Wait(ctx, txID)
}
