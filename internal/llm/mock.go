package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un proveedor real.
type MockClient struct {
	Response string
	Err      error

	mu       sync.Mutex
	requests []Request
}

func (m *MockClient) Generate(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.Response, m.Err
}

// Calls devuelve cuantas veces se invoco Generate.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest devuelve la ultima request recibida, si la hubo.
func (m *MockClient) LastRequest() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return Request{}, false
	}
	return m.requests[len(m.requests)-1], true
}
