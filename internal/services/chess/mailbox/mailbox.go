// Package mailbox queues human moves per session until the agent polls them.
//
// Waiters park on a per-session signal channel that is closed on every
// enqueue, so a pending poll holds no goroutine beyond its caller and never
// spins. Delivery is at-most-once: a move handed to a waiter whose context is
// canceled afterwards is not requeued. Moves are only dequeued once a waiter is
// ready to return, so cancellation before that point leaves the queue intact.
package mailbox

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

type queue struct {
	moves     []game.PendingMove
	signal    chan struct{}
	discarded bool
}

func newQueue() *queue {
	return &queue{signal: make(chan struct{})}
}

// Mailbox holds FIFO move queues keyed by session id.
type Mailbox struct {
	mu     sync.Mutex
	queues map[string]*queue
	now    func() time.Time
}

// New creates an empty mailbox.
func New() *Mailbox {
	return &Mailbox{
		queues: make(map[string]*queue),
		now:    time.Now,
	}
}

// Enqueue appends a move to the session queue and wakes its waiters.
// Legality is not checked here.
func (m *Mailbox) Enqueue(sessionID string, move game.Move) game.PendingMove {
	pending := game.PendingMove{
		SessionID:   sessionID,
		Move:        move,
		SubmittedAt: m.now(),
	}
	m.mu.Lock()
	q, ok := m.queues[sessionID]
	if !ok {
		q = newQueue()
		m.queues[sessionID] = q
	}
	q.moves = append(q.moves, pending)
	close(q.signal)
	q.signal = make(chan struct{})
	m.mu.Unlock()
	return pending
}

// Len returns the number of queued moves for a session.
func (m *Mailbox) Len(sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.queues[sessionID]; ok {
		return len(q.moves)
	}
	return 0
}

// Discard drops every queued move for a session. Waiters parked on the
// session return game.ErrSessionNotFound.
func (m *Mailbox) Discard(sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.queues[sessionID]
	if !ok {
		return 0
	}
	delete(m.queues, sessionID)
	q.discarded = true
	close(q.signal)
	dropped := len(q.moves)
	q.moves = nil
	return dropped
}

// Await blocks until a move is available, never returning before minDelay
// has elapsed since the call began.
func (m *Mailbox) Await(ctx context.Context, sessionID string, minDelay time.Duration) (game.PendingMove, error) {
	pending, _, err := m.AwaitTimeout(ctx, sessionID, minDelay, 0)
	return pending, err
}

// AwaitTimeout behaves like Await but gives up when no move arrives within
// window, reporting ok=false. A non-positive window waits indefinitely. The
// minDelay floor still applies to the timed-out return.
func (m *Mailbox) AwaitTimeout(ctx context.Context, sessionID string, minDelay, window time.Duration) (pending game.PendingMove, ok bool, err error) {
	var floor <-chan time.Time
	if minDelay > 0 {
		timer := time.NewTimer(minDelay)
		defer timer.Stop()
		floor = timer.C
	}
	var expired <-chan time.Time
	if window > 0 {
		timer := time.NewTimer(window)
		defer timer.Stop()
		expired = timer.C
	}
	timedOut := false
	q := m.queue(sessionID)

	for {
		var signal <-chan struct{}
		if floor == nil {
			move, found, wake, err := m.take(q)
			if err != nil {
				return game.PendingMove{}, false, err
			}
			if found {
				return move, true, nil
			}
			if timedOut {
				return game.PendingMove{}, false, nil
			}
			signal = wake
		}
		select {
		case <-ctx.Done():
			return game.PendingMove{}, false, ctx.Err()
		case <-floor:
			floor = nil
		case <-expired:
			timedOut = true
			expired = nil
		case <-signal:
		}
	}
}

// queue returns the session queue, creating it for the first waiter.
func (m *Mailbox) queue(sessionID string) *queue {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.queues[sessionID]
	if !ok {
		q = newQueue()
		m.queues[sessionID] = q
	}
	return q
}

// take pops the oldest move, or returns the channel closed by the next enqueue.
func (m *Mailbox) take(q *queue) (game.PendingMove, bool, <-chan struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.discarded {
		return game.PendingMove{}, false, nil, game.ErrSessionNotFound
	}
	if len(q.moves) == 0 {
		return game.PendingMove{}, false, q.signal, nil
	}
	move := q.moves[0]
	q.moves[0] = game.PendingMove{}
	q.moves = q.moves[1:]
	return move, true, nil, nil
}

// Queues returns the number of sessions holding a queue.
func (m *Mailbox) Queues() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}
