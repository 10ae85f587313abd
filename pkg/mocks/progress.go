package mocks

import (
	"sync"

	"github.com/user/framegrab/pkg/ports"
)

// ProgressSink is a mock implementation of ports.ProgressSink that records
// every published update.
type ProgressSink struct {
	mu      sync.Mutex
	Updates []ports.ProgressUpdate
}

func (m *ProgressSink) Publish(update ports.ProgressUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updates = append(m.Updates, update)
}

// Last returns the most recent update, if any.
func (m *ProgressSink) Last() (ports.ProgressUpdate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Updates) == 0 {
		return ports.ProgressUpdate{}, false
	}
	return m.Updates[len(m.Updates)-1], true
}

var _ ports.ProgressSink = (*ProgressSink)(nil)
