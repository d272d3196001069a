// Package testutil provides common test utilities for missionviz.
package testutil

import (
	"sync"

	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
)

// MockLogger implements logging.Logger for testing purposes.  It records log
// entries so tests can verify logging behavior.  Child loggers created via
// With and Named share the parent's recording.
type MockLogger struct {
	mu       sync.Mutex
	messages []LogMessage

	name   string
	fields []logging.Field
}

// LogMessage is a single log entry captured by MockLogger.
type LogMessage struct {
	Level   string
	Name    string
	Message string
	Fields  []logging.Field
}

// NewMockLogger creates a new MockLogger instance.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := append(append([]logging.Field(nil), m.fields...), fields...)
	m.messages = append(m.messages, LogMessage{
		Level:   level,
		Name:    m.name,
		Message: msg,
		Fields:  all,
	})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) { m.log("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logging.Field)  { m.log("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logging.Field)  { m.log("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logging.Field) { m.log("error", msg, fields) }

func (m *MockLogger) With(fields ...logging.Field) logging.Logger {
	child := m.child()
	child.fields = append(child.fields, fields...)
	return child
}

func (m *MockLogger) Named(name string) logging.Logger {
	child := m.child()
	if child.name == "" {
		child.name = name
	} else {
		child.name = child.name + "." + name
	}
	return child
}

// child shares the parent's mutex-guarded message slice through a back
// pointer so every descendant records into the root.
func (m *MockLogger) child() *mockChild {
	return &mockChild{root: m.root(), name: m.name, fields: append([]logging.Field(nil), m.fields...)}
}

func (m *MockLogger) root() *MockLogger { return m }

// Messages returns a copy of every captured entry.
func (m *MockLogger) Messages() []LogMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogMessage(nil), m.messages...)
}

// HasMessage reports whether any captured entry at the given level contains
// msg verbatim.
func (m *MockLogger) HasMessage(level, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.messages {
		if entry.Level == level && entry.Message == msg {
			return true
		}
	}
	return false
}

// Reset discards every captured entry.
func (m *MockLogger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}

// mockChild is a derived logger that records into its root MockLogger.
type mockChild struct {
	root   *MockLogger
	name   string
	fields []logging.Field
}

func (c *mockChild) log(level, msg string, fields []logging.Field) {
	all := append(append([]logging.Field(nil), c.fields...), fields...)
	c.root.mu.Lock()
	defer c.root.mu.Unlock()
	c.root.messages = append(c.root.messages, LogMessage{
		Level:   level,
		Name:    c.name,
		Message: msg,
		Fields:  all,
	})
}

func (c *mockChild) Debug(msg string, fields ...logging.Field) { c.log("debug", msg, fields) }
func (c *mockChild) Info(msg string, fields ...logging.Field)  { c.log("info", msg, fields) }
func (c *mockChild) Warn(msg string, fields ...logging.Field)  { c.log("warn", msg, fields) }
func (c *mockChild) Error(msg string, fields ...logging.Field) { c.log("error", msg, fields) }

func (c *mockChild) With(fields ...logging.Field) logging.Logger {
	return &mockChild{root: c.root, name: c.name, fields: append(append([]logging.Field(nil), c.fields...), fields...)}
}

func (c *mockChild) Named(name string) logging.Logger {
	full := name
	if c.name != "" {
		full = c.name + "." + name
	}
	return &mockChild{root: c.root, name: full, fields: append([]logging.Field(nil), c.fields...)}
}
