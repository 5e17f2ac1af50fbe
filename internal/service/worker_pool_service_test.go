package service

import (
	"context"
	"sync"
	"testing"

	"github.com/monocle-wallet-service/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCreditService returns a canned outcome and records the claims it saw
type stubCreditService struct {
	mu      sync.Mutex
	claims  []*shared.PaymentClaim
	outcome *CreditOutcome
	block   chan struct{}
}

func (s *stubCreditService) Process(ctx context.Context, claim *shared.PaymentClaim) *CreditOutcome {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.claims = append(s.claims, claim)
	s.mu.Unlock()
	return s.outcome
}

func TestWorkerPoolCreditService_Process(t *testing.T) {
	base := &stubCreditService{outcome: &CreditOutcome{Code: OutcomeSuccess, SparksCredited: 5000}}
	svc, err := NewWorkerPoolCreditService(base, WorkerPoolConfig{Size: 2}, testLogger())
	require.NoError(t, err)
	defer svc.Shutdown()

	claim := testClaim()
	outcome := svc.Process(context.Background(), claim)

	assert.Equal(t, OutcomeSuccess, outcome.Code)
	assert.Equal(t, int64(5000), outcome.SparksCredited)

	// The pool processes a copy so the caller's claim cannot race the worker
	require.Len(t, base.claims, 1)
	assert.NotSame(t, claim, base.claims[0])
	assert.Equal(t, *claim, *base.claims[0])
}

func TestWorkerPoolCreditService_ProcessConcurrent(t *testing.T) {
	base := &stubCreditService{outcome: &CreditOutcome{Code: OutcomeSuccess}}
	svc, err := NewWorkerPoolCreditService(base, WorkerPoolConfig{Size: 4}, testLogger())
	require.NoError(t, err)
	defer svc.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome := svc.Process(context.Background(), testClaim())
			assert.Equal(t, OutcomeSuccess, outcome.Code)
		}()
	}
	wg.Wait()

	assert.Len(t, base.claims, 16)
	assert.Equal(t, 4, svc.Capacity())
}

func TestWorkerPoolCreditService_ShutdownRejectsNewClaims(t *testing.T) {
	base := &stubCreditService{outcome: &CreditOutcome{Code: OutcomeSuccess}}
	svc, err := NewWorkerPoolCreditService(base, WorkerPoolConfig{Size: 1}, testLogger())
	require.NoError(t, err)

	svc.Shutdown()

	outcome := svc.Process(context.Background(), testClaim())

	assert.Equal(t, OutcomeStoreUnavailable, outcome.Code)
	assert.Equal(t, "Service is at capacity", outcome.Message)
	assert.Empty(t, base.claims)
}
