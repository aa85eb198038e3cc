package stream

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Kind tags a decoded message so consumers can tell pushed events from call
// replies. Providers are free to define further kinds in their parsers.
type Kind string

const (
	// KindEvent marks a server-pushed event.
	KindEvent Kind = "event"
	// KindReply marks the response to a request sent over the stream.
	KindReply Kind = "reply"
	// KindUnknown marks a payload the parser could not classify.
	KindUnknown Kind = "unknown"
)

// Message is one decoded unit from the stream. Raw holds the exact UTF-8
// payload as it arrived after frame reassembly.
type Message struct {
	Kind Kind
	Raw  string
}

// Get extracts a value from the raw JSON payload by gjson path.
func (m Message) Get(path string) gjson.Result {
	return gjson.Get(m.Raw, path)
}

// Parser decodes one reassembled text payload into a Message. A parser
// error faults the connection.
type Parser func(text string) (Message, error)

// Matcher reports whether an inbound message is the reply to the given
// outbound payload.
type Matcher func(outbound string, inbound Message) bool

// TagID stamps a fresh correlation identifier into the JSON payload at the
// given path. It returns the tagged payload, the identifier, and a Matcher
// that accepts the message echoing it back at the same path.
func TagID(payload, path string) (tagged, id string, match Matcher, err error) {
	id = uuid.NewString()
	tagged, err = sjson.Set(payload, path, id)
	if err != nil {
		return "", "", nil, fmt.Errorf("stream: tag payload: %w", err)
	}
	match = func(_ string, inbound Message) bool {
		return inbound.Get(path).String() == id
	}
	return tagged, id, match, nil
}
