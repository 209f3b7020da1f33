package mocks

import (
	"context"
	"sync"

	"github.com/ideiatech/smartleader-api/internal/store"
)

// MockTxRunner implements store.TxRunner for testing. The default behavior
// invokes the function with a nil transaction, which works with the store
// mocks because their WithTx ignores the transaction.
type MockTxRunner struct {
	// RunInTxFn allows test cases to mock the RunInTx behavior
	RunInTxFn func(ctx context.Context, fn store.TxFn) error

	// Err, when set, is returned without invoking the function
	Err error

	// Call tracking for verification
	RunInTxCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times RunInTx was called
		Count int
	}
}

// RunInTx implements the store.TxRunner interface
func (m *MockTxRunner) RunInTx(ctx context.Context, fn store.TxFn) error {
	m.RunInTxCalls.mu.Lock()
	m.RunInTxCalls.Count++
	m.RunInTxCalls.mu.Unlock()

	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	if m.Err != nil {
		return m.Err
	}

	return fn(ctx, nil)
}

// CallCount returns how many times RunInTx was called
func (m *MockTxRunner) CallCount() int {
	m.RunInTxCalls.mu.Lock()
	defer m.RunInTxCalls.mu.Unlock()
	return m.RunInTxCalls.Count
}
