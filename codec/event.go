package codec

import (
	"bufio"
	"context"
	"reflect"
	"strings"

	"github.com/kbukum/streamhttp/stream"
)

// Event is a single server-sent event.
type Event struct {
	// ID is the event id (from "id:" lines).
	ID string
	// Type is the event type (from "event:" lines). Empty for data-only
	// events.
	Type string
	// Data is the event payload. Multi-line data is joined with newlines.
	Data string
}

// EventDecoder decodes text/event-stream bodies into Event values, one per
// dispatched event. It is decode-only; servers emit event streams, clients
// do not post them.
type EventDecoder struct{}

// NewEventDecoder returns the Server-Sent Events decoder.
func NewEventDecoder() *EventDecoder {
	return &EventDecoder{}
}

func (d *EventDecoder) CanDecode(t reflect.Type, mt MediaType, _ Hints) bool {
	return t == eventType && EventStream.Matches(mt)
}

func (d *EventDecoder) Decode(body stream.Stream[[]byte], _ reflect.Type, _ MediaType, _ Hints) stream.Stream[any] {
	return &eventDecodeStream{r: newChunkReader(body)}
}

type eventDecodeStream struct {
	r       *chunkReader
	scanner *bufio.Scanner
	done    bool
	err     error
}

func (s *eventDecodeStream) Next(ctx context.Context) (any, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	if s.done {
		return nil, false, nil
	}
	s.r.use(ctx)
	if s.scanner == nil {
		s.scanner = bufio.NewScanner(s.r)
	}

	var event Event
	var hasData bool
	for s.scanner.Scan() {
		line := s.scanner.Text()

		// Blank line signals end of event
		if line == "" {
			if hasData {
				return event, true, nil
			}
			continue
		}

		// Skip comments
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value := parseEventLine(line)
		switch field {
		case "data":
			if hasData {
				event.Data += "\n" + value
			} else {
				event.Data = value
				hasData = true
			}
		case "event":
			event.Type = value
		case "id":
			event.ID = value
		}
	}

	if err := s.scanner.Err(); err != nil {
		s.err = err
		return nil, false, err
	}

	// Stream ended; dispatch the last event if present
	s.done = true
	if hasData {
		return event, true, nil
	}
	return nil, false, nil
}

func (s *eventDecodeStream) Close() error { return s.r.Close() }

// parseEventLine parses a single SSE line into field and value.
func parseEventLine(line string) (field, value string) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return line, ""
	}
	field = line[:idx]
	value = line[idx+1:]
	// Strip single leading space after colon per SSE framing
	if value != "" && value[0] == ' ' {
		value = value[1:]
	}
	return field, value
}
