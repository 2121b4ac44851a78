package mockdecoder

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"pointcard/internal/scanner"
)

// MockDecoder stands in for the capture device in tests. Emit feeds decode
// events; Stop closes the event channel like a real device tearing down
// its capture session.
type MockDecoder struct {
	mock.Mock

	events    chan scanner.Decoded
	closeOnce sync.Once
}

func New(capacity int) *MockDecoder {
	return &MockDecoder{
		events: make(chan scanner.Decoded, capacity),
	}
}

func (m *MockDecoder) Decoded() <-chan scanner.Decoded {
	return m.events
}

func (m *MockDecoder) Emit(decoded scanner.Decoded) {
	m.events <- decoded
}

func (m *MockDecoder) Stop() error {
	args := m.Called()

	m.closeOnce.Do(func() {
		close(m.events)
	})

	return args.Error(0)
}
