package waittx

import (
	"context"
	"time"

	"github.com/llakterian/FTkn-d/types"
)

// Result represents the outcome produced by waiting on a tx. It is filled in
// as far as the chain got, also when an error is returned.
type Result = types.Confirmation

// Querier is the read side of the chain collaborator.
type Querier interface {
	// GetTransactionInfo returns Found=false while the transaction is not
	// indexed yet; that is not an error.
	GetTransactionInfo(ctx context.Context, txID string) (types.TransactionInfo, error)
	GetCurrentHeight(ctx context.Context) (int64, error)
}

// Backoff controls polling cadence.
type Backoff interface {
	Next(attempt int) time.Duration
}

// Policy is the caller supplied confirmation policy of a single watch.
type Policy struct {
	// RequiredDepth is the number of blocks that must be built on top of the
	// inclusion block.
	RequiredDepth int64
	// PollInterval is the wait between attempts when Backoff is nil.
	PollInterval time.Duration
	// MaxAttempts bounds the number of polling iterations. Zero means no
	// query is issued at all.
	MaxAttempts int
	// Backoff overrides the constant PollInterval cadence.
	Backoff Backoff
}

// confirmationState is owned by a single watch and discarded afterwards.
type confirmationState struct {
	attemptsUsed   int
	lastKnownDepth int64
}
