package connection

import (
	"context"
	"errors"
	"sync"
)

// ErrNotConnected is returned by Manager.Current before Connect.
var ErrNotConnected = errors.New("connection: not connected")

// Manager holds the current client of an interactive session.
type Manager struct {
	mu      sync.Mutex
	current *Client
	opts    []Option
}

// NewManager creates a manager whose clients use opts.
func NewManager(opts ...Option) *Manager {
	return &Manager{opts: opts}
}

// Connect dials addr and makes it the current client, closing the previous
// one. On failure the previous client stays current.
func (m *Manager) Connect(ctx context.Context, addr string) (*Client, error) {
	c, err := Dial(ctx, addr, m.opts...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	prev := m.current
	m.current = c
	m.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return c, nil
}

// Current returns the current client. A client closed after a transport
// error is dropped, so callers can redial.
func (m *Manager) Current() (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil && m.current.IsClosed() {
		m.current = nil
	}
	if m.current == nil {
		return nil, ErrNotConnected
	}
	return m.current, nil
}

// IsConnected reports whether a usable client is current.
func (m *Manager) IsConnected() bool {
	_, err := m.Current()
	return err == nil
}

// Close closes the current client.
func (m *Manager) Close() error {
	m.mu.Lock()
	c := m.current
	m.current = nil
	m.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}
