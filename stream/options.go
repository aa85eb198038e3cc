package stream

import (
	"time"

	"github.com/gorilla/websocket"
)

// Option configures a Connection.
type Option func(*connOptions)

// connOptions holds configuration options for the Connection.
type connOptions struct {
	dialer             *websocket.Dialer
	handshakeTimeout   time.Duration
	subscriptionBuffer int
}

// WithDialer supplies the WebSocket dialer. Overrides WithHandshakeTimeout.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(o *connOptions) {
		o.dialer = dialer
	}
}

// WithHandshakeTimeout bounds the dial handshake.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(o *connOptions) {
		o.handshakeTimeout = timeout
	}
}

// WithSubscriptionBuffer sets the per-subscriber channel capacity.
func WithSubscriptionBuffer(size int) Option {
	return func(o *connOptions) {
		if size > 0 {
			o.subscriptionBuffer = size
		}
	}
}
