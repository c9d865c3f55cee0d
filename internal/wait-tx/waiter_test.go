package waittx

import (
	"context"
	"errors"
	"testing"
	"time"

	clientconfig "github.com/llakterian/FTkn-d/client/config"
	"github.com/llakterian/FTkn-d/types"
)

func TestNewRequiresQuerier(t *testing.T) {
	if _, err := New(clientconfig.DefaultWaitTxConfig(), nil, nil); err == nil {
		t.Fatalf("expected error without querier")
	}
}

func TestNewSetsDefaults(t *testing.T) {
	q := &scriptedQuerier{infos: []infoStep{included(100)}, heights: []heightStep{{height: 119}}}

	w, err := New(clientconfig.WaitTxConfig{}, q, nil)
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	policy := w.Policy()
	if policy.RequiredDepth != clientconfig.DefaultConfirmations {
		t.Fatalf("unexpected default depth: %d", policy.RequiredDepth)
	}
	if policy.MaxAttempts != clientconfig.DefaultWaitTxConfig().PollMaxRetries {
		t.Fatalf("unexpected default attempts: %d", policy.MaxAttempts)
	}
	if _, ok := policy.Backoff.(constantBackoff); !ok {
		t.Fatalf("expected constant backoff by default, got %T", policy.Backoff)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := w.Wait(ctx, "tx", 0); err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
}

func TestWaiterFreshBudgetPerWait(t *testing.T) {
	q := &scriptedQuerier{infos: []infoStep{{}}}
	w, err := New(clientconfig.WaitTxConfig{
		Confirmations:  19,
		PollInterval:   time.Millisecond,
		PollMaxRetries: 3,
	}, q, nil)
	if err != nil {
		t.Fatalf("new error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 2; i++ {
		if _, err := w.Wait(ctx, "tx", 0); !errors.Is(err, types.ErrTimedOut) {
			t.Fatalf("wait %d: expected ErrTimedOut, got %v", i, err)
		}
	}
	if infoCalls, _ := q.calls(); infoCalls != 6 {
		t.Fatalf("expected 3 attempts per wait, got %d calls", infoCalls)
	}
}

func TestWaitDepthOverridesPolicy(t *testing.T) {
	q := &scriptedQuerier{infos: []infoStep{included(100)}, heights: []heightStep{{height: 120}, {height: 127}}}
	w, err := New(clientconfig.WaitTxConfig{
		Confirmations:  19,
		PollInterval:   time.Millisecond,
		PollMaxRetries: 5,
	}, q, nil)
	if err != nil {
		t.Fatalf("new error: %v", err)
	}

	res, err := w.WaitDepth(context.Background(), "tx", 27, time.Second)
	if err != nil {
		t.Fatalf("wait error: %v", err)
	}
	if res.Depth != 27 || res.Attempts != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestWaitTimeoutCancelsPolling(t *testing.T) {
	q := &scriptedQuerier{infos: []infoStep{{}}}
	w, err := New(clientconfig.WaitTxConfig{
		Confirmations:  19,
		PollInterval:   time.Hour,
		PollMaxRetries: 10,
	}, q, nil)
	if err != nil {
		t.Fatalf("new error: %v", err)
	}

	if _, err := w.Wait(context.Background(), "tx", 20*time.Millisecond); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestNewBackoffSelectsExponential(t *testing.T) {
	b := NewBackoff(clientconfig.WaitTxConfig{
		PollInterval:           time.Second,
		PollBackoffMultiplier:  2,
		PollBackoffMaxInterval: 3 * time.Second,
	})
	if got := b.Next(3); got != 3*time.Second {
		t.Fatalf("expected capped delay, got %v", got)
	}
	if got := NewBackoff(clientconfig.WaitTxConfig{}).Next(7); got != defaultInterval {
		t.Fatalf("expected default constant delay, got %v", got)
	}
}
