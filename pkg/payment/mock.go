package payment

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Compile-time check to ensure MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)

// MockProvider simulates a PIX provider for development and tests.
// Created payments are kept in memory so webhook lookups resolve.
type MockProvider struct {
	mu       sync.Mutex
	payments map[string]*Info

	// FailCreate makes CreatePixPayment return an error, simulating a
	// provider outage.
	FailCreate bool
}

// NewMockProvider creates a new MockProvider
func NewMockProvider() *MockProvider {
	return &MockProvider{
		payments: make(map[string]*Info),
	}
}

// CreatePixPayment simulates creating a PIX charge
func (p *MockProvider) CreatePixPayment(ctx context.Context, req PixRequest) (*PixPayment, error) {
	if p.FailCreate {
		return nil, fmt.Errorf("mock provider: create payment failed")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	id := fmt.Sprintf("MOCK-PIX-%d", time.Now().UnixNano())
	p.payments[id] = &Info{
		ID:                id,
		Status:            StatusApproved,
		ExternalReference: req.ExternalReference,
	}
	return &PixPayment{
		ID:         id,
		QRCode:     "bW9jay1xci1jb2Rl",
		QRCodeCopy: "00020126mock" + req.ExternalReference,
	}, nil
}

// GetPayment returns a previously created mock payment
func (p *MockProvider) GetPayment(ctx context.Context, id string) (*Info, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, ok := p.payments[id]
	if !ok {
		return nil, fmt.Errorf("mock provider: payment %s not found", id)
	}
	return info, nil
}
