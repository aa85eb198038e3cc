package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/birdwire/birdwire/api"
)

// State is the connection lifecycle position.
type State int

const (
	// StateIdle is a constructed connection that never dialed.
	StateIdle State = iota
	// StateConnecting covers the dial and handshake.
	StateConnecting
	// StateOpen is a live connection with a running receive loop.
	StateOpen
	// StateClosing covers a graceful close handshake in flight.
	StateClosing
	// StateClosed is a connection that completed its close handshake.
	StateClosed
	// StateFaulted is a connection whose receive loop died on an error.
	StateFaulted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// frameChunkSize is the read granularity while reassembling one message from
// its frames.
const frameChunkSize = 4096

// closeGrace bounds how long a graceful close waits for the peer's close
// frame before the receive loop is forced out.
const closeGrace = 5 * time.Second

// Connection is one persistent streaming connection. It owns at most one
// physical socket; after it closes or faults, a new cycle means a new
// Connection.
type Connection struct {
	client *api.Client
	parse  Parser
	match  Matcher
	logger zerolog.Logger
	dialer *websocket.Dialer
	hub    *hub

	writeMu sync.Mutex

	mu    sync.Mutex
	state State
	conn  *websocket.Conn
	done  chan struct{}
}

// New builds a connection over the given client. parse decodes inbound text
// payloads, match pairs an outbound payload with its reply for Request.
func New(client *api.Client, parse Parser, match Matcher, logger zerolog.Logger, opts ...Option) (*Connection, error) {
	if client == nil {
		return nil, ErrNoClient
	}
	if parse == nil {
		return nil, ErrNoParser
	}
	if match == nil {
		return nil, ErrNoMatcher
	}

	o := connOptions{
		handshakeTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	dialer := o.dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: o.handshakeTimeout}
	}

	return &Connection{
		client: client,
		parse:  parse,
		match:  match,
		logger: logger,
		dialer: dialer,
		hub:    newHub(o.subscriptionBuffer),
		state:  StateIdle,
	}, nil
}

// State returns the current lifecycle position.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a listener on the message sequence. Subscribing before
// Connect is allowed; messages start flowing once the connection opens. On a
// connection that already ended, the returned subscription is closed and
// carries the terminal error.
func (c *Connection) Subscribe() *Subscription {
	return c.hub.subscribe()
}

// Connect dials the streaming endpoint and starts the receive loop. The
// endpoint is resolved against the client's base URL with the scheme flipped
// to ws/wss, or used as-is when it is already a ws/wss URL. Parameters are
// signed through the client's auth strategy and appended as a query string.
// A connection connects at most once.
func (c *Connection) Connect(ctx context.Context, endpoint string, params *api.Params) error {
	c.mu.Lock()
	if c.state != StateIdle {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrConsumed, state)
	}
	c.state = StateConnecting
	c.mu.Unlock()

	target, err := c.buildURL(endpoint)
	if err != nil {
		return c.failConnect(err)
	}

	header := http.Header{}
	header.Set("User-Agent", c.client.UserAgent())

	authHeader, err := c.client.AuthHeader(http.MethodGet, target, params)
	if err != nil {
		return c.failConnect(fmt.Errorf("failed to sign handshake: %w", err))
	}
	for key, values := range authHeader {
		header[key] = values
	}

	fullURL := target
	if params != nil {
		if query := params.Encode(); query != "" {
			fullURL += "?" + query
		}
	}

	conn, resp, err := c.dialer.DialContext(ctx, fullURL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return c.failConnect(fmt.Errorf("dial failed: %w", err))
	}

	c.mu.Lock()
	c.conn = conn
	c.state = StateOpen
	c.done = make(chan struct{})
	c.mu.Unlock()

	c.logger.Debug().Str("url", target).Msg("Stream connected")
	go c.receiveLoop()
	return nil
}

// Send writes one payload as one complete text message. It fails immediately
// when the connection is not open.
func (c *Connection) Send(payload string) error {
	c.mu.Lock()
	if c.state != StateOpen {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotOpen, state)
	}
	conn := c.conn
	c.mu.Unlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		return fmt.Errorf("stream write failed: %w", err)
	}
	return nil
}

// Request sends the payload and waits for the first subsequent message the
// connection's Matcher pairs with it, skipping unrelated traffic. The wait
// has no built-in timeout; bound it through ctx. It fails instead of
// hanging when the connection closes or faults first.
func (c *Connection) Request(ctx context.Context, payload string) (Message, error) {
	return c.RequestMatched(ctx, payload, c.match)
}

// RequestMatched is Request with a per-call Matcher in place of the
// connection's, for payloads carrying their own correlation, such as those
// tagged by TagID.
func (c *Connection) RequestMatched(ctx context.Context, payload string, match Matcher) (Message, error) {
	// Register before writing so a reply arriving immediately is not lost.
	w := c.hub.addWaiter(func(m Message) bool {
		return match(payload, m)
	})

	if err := c.Send(payload); err != nil {
		c.hub.removeWaiter(w)
		return Message{}, err
	}

	select {
	case res := <-w.res:
		return res.msg, res.err
	case <-ctx.Done():
		c.hub.removeWaiter(w)
		return Message{}, ctx.Err()
	}
}

// Disconnect performs a graceful close handshake when the connection is
// open, failing any pending Request, and is a no-op in every other state.
// It returns once the receive loop has drained and the socket is released.
func (c *Connection) Disconnect() error {
	c.mu.Lock()
	if c.state != StateOpen {
		c.mu.Unlock()
		return nil
	}
	c.state = StateClosing
	conn := c.conn
	done := c.done
	c.mu.Unlock()

	deadline := time.Now().Add(closeGrace)
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := conn.WriteControl(websocket.CloseMessage, message, deadline)
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		c.logger.Debug().Err(err).Msg("Close frame write failed")
	}

	// The loop normally exits on the peer's close echo; the deadline forces
	// it out when the peer never answers.
	_ = conn.SetReadDeadline(deadline)
	<-done

	c.logger.Debug().Msg("Stream disconnected")
	return nil
}

// receiveLoop is the single reader. It reassembles each message from its
// frames, decodes it, and broadcasts it until a close frame or an error ends
// the sequence.
func (c *Connection) receiveLoop() {
	var fault error

	for {
		frameType, reader, err := c.conn.NextReader()
		if err != nil {
			fault = classifyLoopExit(err)
			break
		}

		if frameType != websocket.TextMessage {
			// Binary frames are consumed and dropped.
			_, _ = io.Copy(io.Discard, reader)
			continue
		}

		text, err := reassemble(reader)
		if err != nil {
			fault = err
			break
		}

		msg, err := c.parse(text)
		if err != nil {
			fault = fmt.Errorf("parse message: %w", err)
			break
		}

		c.hub.broadcast(msg)
	}

	c.mu.Lock()
	closing := c.state == StateClosing
	if fault == nil || closing {
		// A requested close counts as graceful even when the peer drops
		// the socket instead of echoing the close frame.
		fault = nil
		c.state = StateClosed
	} else {
		c.state = StateFaulted
	}
	conn := c.conn
	done := c.done
	c.mu.Unlock()

	conn.Close()

	if fault != nil {
		c.logger.Debug().Err(fault).Msg("Stream faulted")
		c.hub.complete(&FaultError{Err: fault})
	} else {
		c.logger.Debug().Msg("Stream completed")
		c.hub.complete(nil)
	}
	close(done)
}

// classifyLoopExit separates a received close frame, which completes the
// sequence normally, from a transport error, which faults it. Code 1006 is
// never carried by a real close frame, the library synthesizes it when the
// socket drops, so it counts as a fault.
func classifyLoopExit(err error) error {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) && closeErr.Code != websocket.CloseAbnormalClosure {
		return nil
	}
	return fmt.Errorf("stream read failed: %w", err)
}

// reassemble accumulates one logical message across however many frames the
// peer split it into and returns the concatenated text.
func reassemble(reader io.Reader) (string, error) {
	var buf bytes.Buffer
	chunk := make([]byte, frameChunkSize)
	for {
		n, err := reader.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("stream read failed: %w", err)
		}
	}
}

// buildURL resolves the endpoint to a ws/wss URL, flipping the client base
// URL's scheme when the endpoint is relative.
func (c *Connection) buildURL(endpoint string) (string, error) {
	if strings.HasPrefix(endpoint, "ws://") || strings.HasPrefix(endpoint, "wss://") {
		return endpoint, nil
	}

	base, err := url.Parse(c.client.BaseURL())
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.client.BaseURL(), err)
	}

	switch base.Scheme {
	case "http", "ws":
		base.Scheme = "ws"
	case "https", "wss":
		base.Scheme = "wss"
	default:
		return "", fmt.Errorf("base URL %q has no streamable scheme", c.client.BaseURL())
	}

	base.Path = strings.TrimRight(base.Path, "/") + endpoint
	return base.String(), nil
}

// failConnect marks a connection whose dial never produced a socket. The
// cycle is consumed; subscribers and waiters learn the fault.
func (c *Connection) failConnect(err error) error {
	c.mu.Lock()
	c.state = StateFaulted
	c.mu.Unlock()
	c.hub.complete(&FaultError{Err: err})
	return err
}
