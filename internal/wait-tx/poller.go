package waittx

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/llakterian/FTkn-d/types"
)

type poller struct {
	querier  Querier
	backoff  Backoff
	maxTries int
	depth    int64
	logger   *zap.Logger
}

// AwaitConfirmation polls q until txID is executed successfully and buried
// under p.RequiredDepth blocks, the chain reports it failed, or p.MaxAttempts
// polling iterations are used up.
//
// Query errors and not-yet-indexed transactions count as "not available yet"
// and only consume an attempt. The inclusion block is re-read on every
// attempt, so a reorg that moves the transaction is picked up naturally.
//
// Terminal errors wrap types.ErrTransactionFailed or types.ErrTimedOut; a
// cancelled ctx returns ctx.Err().
func AwaitConfirmation(ctx context.Context, q Querier, txID string, p Policy) (Result, error) {
	pl, err := newPoller(q, p, nil)
	if err != nil {
		return Result{TxID: txID, Status: types.TransactionStatusPending}, err
	}
	return pl.Wait(ctx, txID)
}

func newPoller(q Querier, p Policy, logger *zap.Logger) (*poller, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: querier is required", types.ErrInvalidConfig)
	}
	if p.RequiredDepth <= 0 {
		return nil, fmt.Errorf("%w: required depth must be positive, got %d", types.ErrInvalidConfig, p.RequiredDepth)
	}
	if p.MaxAttempts < 0 {
		return nil, fmt.Errorf("%w: max attempts must not be negative, got %d", types.ErrInvalidConfig, p.MaxAttempts)
	}
	backoff := p.Backoff
	if backoff == nil {
		if p.PollInterval <= 0 {
			return nil, fmt.Errorf("%w: poll interval must be positive, got %v", types.ErrInvalidConfig, p.PollInterval)
		}
		backoff = constantBackoff{every: p.PollInterval}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &poller{
		querier:  q,
		backoff:  backoff,
		maxTries: p.MaxAttempts,
		depth:    p.RequiredDepth,
		logger:   logger,
	}, nil
}

func (p *poller) Wait(ctx context.Context, txID string) (Result, error) {
	res := Result{TxID: txID, Status: types.TransactionStatusPending}
	if txID == "" {
		return res, fmt.Errorf("%w: transaction id is required", types.ErrInvalidConfig)
	}

	log := p.logger.With(zap.String("tx_id", txID), zap.Int64("required", p.depth))
	var state confirmationState

	for state.attemptsUsed < p.maxTries {
		if err := ctx.Err(); err != nil {
			res.Attempts = state.attemptsUsed
			return res, err
		}

		confirmed, err := p.check(ctx, txID, &state, &res, log)
		if err != nil {
			res.Attempts = state.attemptsUsed + 1
			return res, err
		}
		if confirmed {
			res.Attempts = state.attemptsUsed + 1
			log.Info("transaction confirmed",
				zap.Int64("depth", res.Depth),
				zap.Int64("block", res.InclusionBlock),
				zap.Int("attempts", res.Attempts))
			return res, nil
		}

		state.attemptsUsed++
		if state.attemptsUsed >= p.maxTries {
			break
		}

		select {
		case <-ctx.Done():
			res.Attempts = state.attemptsUsed
			return res, ctx.Err()
		case <-sleepCtx(ctx, p.backoff.Next(state.attemptsUsed)):
		}
	}

	res.Attempts = state.attemptsUsed
	return res, fmt.Errorf("%w: %s at depth %d/%d after %d attempts",
		types.ErrTimedOut, txID, state.lastKnownDepth, p.depth, state.attemptsUsed)
}

// check runs a single polling attempt. It returns an error only for terminal
// outcomes; transient failures are logged and reported as not confirmed.
func (p *poller) check(ctx context.Context, txID string, state *confirmationState, res *Result, log *zap.Logger) (bool, error) {
	attempt := zap.Int("attempt", state.attemptsUsed+1)

	info, err := p.querier.GetTransactionInfo(ctx, txID)
	if err != nil {
		log.Debug("transaction info unavailable", attempt, zap.Error(err))
		return false, nil
	}
	if !info.Found {
		log.Debug("transaction not indexed yet", attempt)
		return false, nil
	}

	res.InclusionBlock = info.InclusionBlock
	res.Status = info.Status

	switch info.Status {
	case types.TransactionStatusFailed:
		log.Warn("transaction failed on chain", attempt, zap.String("reason", info.Message))
		if info.Message != "" {
			return false, fmt.Errorf("%w: %s: %s", types.ErrTransactionFailed, txID, info.Message)
		}
		return false, fmt.Errorf("%w: %s", types.ErrTransactionFailed, txID)
	case types.TransactionStatusSucceeded:
	default:
		return false, nil
	}

	height, err := p.querier.GetCurrentHeight(ctx)
	if err != nil {
		log.Debug("chain height unavailable", attempt, zap.Error(err))
		return false, nil
	}

	depth := height - info.InclusionBlock
	if depth < 0 {
		// head reported by a lagging node
		depth = 0
	}
	state.lastKnownDepth = depth
	res.Depth = depth

	log.Info("confirmations", attempt, zap.Int64("depth", depth))
	return depth >= p.depth, nil
}

func sleepCtx(ctx context.Context, d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	if d <= 0 {
		close(ch)
		return ch
	}
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
		close(ch)
	}()
	return ch
}
