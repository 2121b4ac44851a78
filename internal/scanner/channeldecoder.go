package scanner

import (
	"strings"
	"sync"
)

// ChannelDecoder is a Decoder fed programmatically, for hosts whose
// capture device delivers decodes through callbacks. Events emitted after
// Stop, or while the buffer is full, are dropped.
type ChannelDecoder struct {
	mu      sync.Mutex
	events  chan Decoded
	stopped bool
}

func NewChannelDecoder(capacity int) *ChannelDecoder {
	return &ChannelDecoder{
		events: make(chan Decoded, capacity),
	}
}

func (d *ChannelDecoder) Decoded() <-chan Decoded {
	return d.events
}

func (d *ChannelDecoder) Emit(decoded Decoded) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}

	select {
	case d.events <- decoded:
		return true
	default:
		return false
	}
}

func (d *ChannelDecoder) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil
	}
	d.stopped = true
	close(d.events)

	return nil
}

// ParseLine turns a typed line into a decode event. A `format:value`
// prefix selects the symbology; a bare value is treated as code128, the
// symbology the backend prints point identifiers in.
func ParseLine(line string) Decoded {
	if before, after, found := strings.Cut(line, ":"); found {
		format := Format(strings.ToLower(strings.TrimSpace(before)))
		if acceptedFormats[format] {
			return Decoded{Value: strings.TrimSpace(after), Format: format}
		}
	}

	return Decoded{Value: strings.TrimSpace(line), Format: FormatCode128}
}
