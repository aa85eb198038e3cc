package stream

import "sync"

// defaultSubscriptionBuffer is the per-subscriber channel capacity. A
// subscriber that stops draining a full channel stalls delivery for the
// whole connection; cancel instead of abandoning.
const defaultSubscriptionBuffer = 64

// Subscription is one listener on the connection's message sequence. It
// observes every message broadcast after it was created, in arrival order.
type Subscription struct {
	hub  *hub
	msgs chan Message
	quit chan struct{}

	quitOnce sync.Once

	mu     sync.Mutex
	closed bool
	err    error
}

// C returns the message channel. It is closed when the connection completes,
// faults, or the subscription is cancelled.
func (s *Subscription) C() <-chan Message {
	return s.msgs
}

// Err reports why the channel closed: nil after a normal close or a cancel,
// the fault otherwise. Only meaningful once C is closed.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cancel detaches the subscription and closes its channel. Safe to call
// concurrently with delivery and more than once.
func (s *Subscription) Cancel() {
	s.quitOnce.Do(func() {
		close(s.quit)
	})
	s.hub.remove(s)
	s.close(nil)
}

// deliver hands one message to the subscriber, blocking until there is
// buffer room or the subscription is cancelled. The lock keeps the send and
// the channel close from racing.
func (s *Subscription) deliver(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.msgs <- msg:
	case <-s.quit:
	}
}

func (s *Subscription) close(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.msgs)
}

// waiter is a one-shot predicate subscription backing Request. It resolves
// exactly once, with the first matching message or with the connection's
// terminal error.
type waiter struct {
	match func(Message) bool
	res   chan waitResult
	once  sync.Once
}

type waitResult struct {
	msg Message
	err error
}

func (w *waiter) resolve(msg Message, err error) {
	w.once.Do(func() {
		w.res <- waitResult{msg: msg, err: err}
	})
}

// hub is the single-producer multicast feeding subscribers and waiters.
// broadcast and complete are only ever called from one goroutine at a time;
// subscribe, addWaiter and the removals may race with them freely.
type hub struct {
	bufferSize int

	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	waiters map[*waiter]struct{}
	done    bool
	err     error
}

func newHub(bufferSize int) *hub {
	if bufferSize < 1 {
		bufferSize = defaultSubscriptionBuffer
	}
	return &hub{
		bufferSize: bufferSize,
		subs:       make(map[*Subscription]struct{}),
		waiters:    make(map[*waiter]struct{}),
	}
}

// subscribe registers a new listener. On a hub that already completed it
// returns a closed subscription carrying the terminal error.
func (h *hub) subscribe() *Subscription {
	s := &Subscription{
		hub:  h,
		msgs: make(chan Message, h.bufferSize),
		quit: make(chan struct{}),
	}

	h.mu.Lock()
	if h.done {
		err := h.err
		h.mu.Unlock()
		s.close(err)
		return s
	}
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *hub) remove(s *Subscription) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}

// addWaiter registers a one-shot predicate wait. On a hub that already
// completed the waiter resolves immediately with the terminal error.
func (h *hub) addWaiter(match func(Message) bool) *waiter {
	w := &waiter{
		match: match,
		res:   make(chan waitResult, 1),
	}

	h.mu.Lock()
	if h.done {
		err := h.err
		h.mu.Unlock()
		w.resolve(Message{}, err)
		return w
	}
	h.waiters[w] = struct{}{}
	h.mu.Unlock()
	return w
}

func (h *hub) removeWaiter(w *waiter) {
	h.mu.Lock()
	delete(h.waiters, w)
	h.mu.Unlock()
}

// broadcast delivers one message to every subscriber in order, then resolves
// and detaches the waiters whose predicate accepts it.
func (h *hub) broadcast(msg Message) {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return
	}
	subs := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	waiters := make([]*waiter, 0, len(h.waiters))
	for w := range h.waiters {
		waiters = append(waiters, w)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.deliver(msg)
	}
	for _, w := range waiters {
		if w.match(msg) {
			h.removeWaiter(w)
			w.resolve(msg, nil)
		}
	}
}

// complete ends the sequence exactly once. A nil err is a normal close:
// subscribers see a clean channel close, pending waiters still fail because
// their reply can no longer arrive.
func (h *hub) complete(err error) {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return
	}
	h.done = true
	h.err = err
	subs := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	waiters := make([]*waiter, 0, len(h.waiters))
	for w := range h.waiters {
		waiters = append(waiters, w)
	}
	h.subs = make(map[*Subscription]struct{})
	h.waiters = make(map[*waiter]struct{})
	h.mu.Unlock()

	for _, s := range subs {
		s.close(err)
	}

	waitErr := err
	if waitErr == nil {
		waitErr = ErrClosed
	}
	for _, w := range waiters {
		w.resolve(Message{}, waitErr)
	}
}
