package apmatch

import (
	"context"
	"sync"

	"github.com/agentstation/apmatch/pkg/documents"
	"github.com/agentstation/apmatch/pkg/validate"
)

// Pair is one invoice and the purchase order it claims to fulfill.
type Pair struct {
	Invoice *documents.Invoice
	PO      *documents.PurchaseOrder
}

// PairResult is the outcome of validating one pair in a batch. Exactly
// one of Result and Err is set.
type PairResult struct {
	// Index is the position of the pair in the input slice.
	Index int

	Result *validate.Result
	Err    error
}

// ValidatePairs reconciles a batch of document pairs concurrently using
// a bounded worker pool. Outcomes are returned in input order; a failed
// pair carries its error without affecting the others. Cancelling the
// context stops unstarted work, and cancelled pairs report ctx.Err().
func (m *matcher) ValidatePairs(ctx context.Context, pairs []Pair) []PairResult {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]PairResult, len(pairs))
	if len(pairs) == 0 {
		return results
	}

	workers := m.workers
	if workers > len(pairs) {
		workers = len(pairs)
	}

	m.logger.Debug().
		Int("pairs", len(pairs)).
		Int("workers", workers).
		Msg("Validating document pairs")

	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result, err := m.Validate(ctx, pairs[i].Invoice, pairs[i].PO)
				results[i] = PairResult{Index: i, Result: result, Err: err}
			}
		}()
	}

	for i := range pairs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Mark the unsubmitted pairs as cancelled.
			for j := i; j < len(pairs); j++ {
				results[j] = PairResult{Index: j, Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
