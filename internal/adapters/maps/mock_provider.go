package maps

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type MockJourney struct {
	From, To string
	Minutes  int
}

// MockJourneyProvider serves journey times from a fixed table and
// counts provider invocations, so tests can assert that memoized
// lookups never reach the provider.
type MockJourneyProvider struct {
	mu      sync.Mutex
	uniform int
	m       map[string]int
	errs    map[string]error
	calls   map[string]int
	total   int
}

func NewMockJourneyProvider(pairs []MockJourney) *MockJourneyProvider {
	m := make(map[string]int, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p.Minutes
	}
	return &MockJourneyProvider{
		m:     m,
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// NewUniformJourneyProvider answers every pair with the same minutes.
func NewUniformJourneyProvider(minutes int) *MockJourneyProvider {
	return &MockJourneyProvider{
		uniform: minutes,
		m:       map[string]int{},
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

// FailWith makes lookups for the pair return err instead of a value.
func (p *MockJourneyProvider) FailWith(from, to string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[from+"|"+to] = err
}

// Set adds or replaces a pair.
func (p *MockJourneyProvider) Set(from, to string, minutes int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[from+"|"+to] = minutes
}

func (p *MockJourneyProvider) JourneyTime(ctx context.Context, origin, destination string, arrival time.Time) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := origin + "|" + destination
	p.calls[key]++
	p.total++

	if err, ok := p.errs[key]; ok {
		return 0, err
	}

	if minutes, ok := p.m[key]; ok {
		return minutes, nil
	}
	if p.uniform > 0 {
		return p.uniform, nil
	}

	return 0, fmt.Errorf("missing pair %q -> %q", origin, destination)
}

// Calls returns how many times the pair was looked up.
func (p *MockJourneyProvider) Calls(from, to string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[from+"|"+to]
}

// TotalCalls returns the number of provider invocations across all pairs.
func (p *MockJourneyProvider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}
