// Package scanner models a one-shot barcode acquisition session on top of
// a capture device. A session observes decode events, accepts the first
// machine-readable code in a supported format, stops the device and emits
// exactly one point identifier.
package scanner

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pointcard/internal/logger"
)

type Format string

const (
	FormatEAN13   Format = "ean13"
	FormatQR      Format = "qr"
	FormatCode128 Format = "code128"
	FormatEAN8    Format = "ean8"
	FormatUPCE    Format = "upce"
	FormatPDF417  Format = "pdf417"
)

var acceptedFormats = map[Format]bool{
	FormatEAN13:   true,
	FormatQR:      true,
	FormatCode128: true,
	FormatEAN8:    true,
	FormatUPCE:    true,
	FormatPDF417:  true,
}

// Decoded is a single decode event produced by the capture device.
type Decoded struct {
	Value  string
	Format Format
}

// Decoder is the capture device. Its event channel is closed when the
// device stops.
type Decoder interface {
	Decoded() <-chan Decoded
	Stop() error
}

// Session consumes a Decoder until the first acceptable decode. A session
// is one-shot: once it has emitted, or was stopped, a fresh Session must
// be created to scan again.
type Session struct {
	decoder Decoder
	id      string

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

func NewSession(decoder Decoder) *Session {
	return &Session{
		decoder: decoder,
		id:      uuid.New().String(),
		done:    make(chan struct{}),
	}
}

// Start begins observing decode events. The returned channel receives at
// most one identifier and is closed afterwards; absence of an emission
// simply means no supported code was decoded before the session ended.
func (s *Session) Start(ctx context.Context) (<-chan string, error) {
	alreadyStarted := true
	s.startOnce.Do(func() {
		alreadyStarted = false
	})
	if alreadyStarted {
		return nil, ErrSessionConsumed
	}

	identifiers := make(chan string, 1)

	go func() {
		defer close(identifiers)

		for {
			select {
			case <-ctx.Done():
				s.stopDecoder()
				return

			case <-s.done:
				return

			case decoded, ok := <-s.decoder.Decoded():
				if !ok {
					return
				}

				if decoded.Value == "" || !acceptedFormats[decoded.Format] {
					logger.Log.Debugln(
						"ignoring decode event",
						"session", s.id,
						"format", string(decoded.Format),
					)
					continue
				}

				s.stopDecoder()
				identifiers <- decoded.Value

				return
			}
		}
	}()

	return identifiers, nil
}

// Stop ends the session before a decode happened, e.g. when the hosting
// screen is torn down. Safe to call at any time, from any goroutine.
func (s *Session) Stop() {
	s.stopDecoder()
}

func (s *Session) stopDecoder() {
	s.stopOnce.Do(func() {
		close(s.done)

		if err := s.decoder.Stop(); err != nil {
			logger.Log.Debugln(
				"error while stopping the capture device",
				"session", s.id,
				zap.Error(err),
			)
		}
	})
}
