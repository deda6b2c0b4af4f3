package view

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"

	"github.com/velrin/telekit/core/logger"
	"github.com/velrin/telekit/core/telegram/callbacks"
)

// Click is one button press delivered to an Iterator.
type Click struct {
	// Action is the payload the button was built with.
	Action string
	Sender *tele.User
	// Message is the message the button lives on.
	Message *tele.Message
}

// IteratorOptions customises one iterator.
type IteratorOptions struct {
	// Owner restricts clicks to one user; zero accepts anyone.
	Owner int64
	// Timeout overrides the manager default.
	Timeout time.Duration
	// QueueSize overrides the manager default click buffer.
	QueueSize int
}

// Iterator bridges inline button callbacks into a pull-based click stream.
// Build its buttons with Btn, then consume clicks with Next.
type Iterator struct {
	id      string
	manager *Manager

	clicks chan Click
	done   chan struct{}

	mu      sync.Mutex
	owner   int64
	timeout time.Duration
	timer   *time.Timer
	stopped bool
}

// NewIterator registers a click iterator with the manager.
func (m *Manager) NewIterator(opts IteratorOptions) *Iterator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = m.timeout
	}
	size := opts.QueueSize
	if size <= 0 {
		size = m.queueSize
	}

	it := &Iterator{
		id:      uuid.NewString(),
		manager: m,
		clicks:  make(chan Click, size),
		done:    make(chan struct{}),
		owner:   opts.Owner,
		timeout: timeout,
	}
	it.timer = time.AfterFunc(timeout, it.Stop)

	m.mu.Lock()
	m.iterators[it.id] = it
	m.mu.Unlock()
	return it
}

// ID returns the iterator identifier used in callback payloads.
func (it *Iterator) ID() string { return it.id }

// Btn builds an inline button whose presses feed this iterator.
func (it *Iterator) Btn(markup *tele.ReplyMarkup, text, action string) tele.Btn {
	return markup.Data(text, iterUnique, it.id, action)
}

// Next blocks until a click arrives, the iterator stops, or ctx is done.
// After stop or timeout it returns ErrIteratorDone once the buffered
// clicks are drained.
func (it *Iterator) Next(ctx context.Context) (Click, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	// Prefer buffered clicks over the done signal.
	select {
	case click := <-it.clicks:
		return click, nil
	default:
	}
	select {
	case click := <-it.clicks:
		return click, nil
	case <-it.done:
		select {
		case click := <-it.clicks:
			return click, nil
		default:
		}
		return Click{}, ErrIteratorDone
	case <-ctx.Done():
		return Click{}, ctx.Err()
	}
}

// Stop ends the iterator; pending Next calls return ErrIteratorDone once
// the buffer is drained. Stopping twice is a no-op.
func (it *Iterator) Stop() {
	it.mu.Lock()
	if it.stopped {
		it.mu.Unlock()
		return
	}
	it.stopped = true
	if it.timer != nil {
		it.timer.Stop()
	}
	it.mu.Unlock()

	it.manager.removeIterator(it.id)
	close(it.done)
}

func (it *Iterator) touch() {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.stopped || it.timer == nil {
		return
	}
	it.timer.Reset(it.timeout)
}

// push enqueues a click, dropping the oldest one when the buffer is full.
func (it *Iterator) push(click Click) {
	for {
		select {
		case it.clicks <- click:
			return
		default:
		}
		select {
		case dropped := <-it.clicks:
			logger.View.Warn("iterator click dropped",
				slog.String("event", "iter.drop"),
				slog.String("sid", it.id),
				slog.String("action", dropped.Action),
			)
		default:
		}
	}
}

func (m *Manager) removeIterator(id string) {
	m.mu.Lock()
	delete(m.iterators, id)
	m.mu.Unlock()
}

func (m *Manager) iterator(id string) (*Iterator, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.iterators[id]
	return it, ok
}

func (m *Manager) handleIterClick(c tele.Context, payload string) error {
	parts := callbacks.SplitPayload(payload, 2)
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: alertExpired})
	}
	id, action := parts[0], parts[1]

	it, ok := m.iterator(id)
	if !ok {
		_ = c.Respond(&tele.CallbackResponse{Text: alertExpired})
		return nil
	}

	it.mu.Lock()
	owner := it.owner
	stopped := it.stopped
	it.mu.Unlock()
	if stopped {
		return c.Respond(&tele.CallbackResponse{Text: alertExpired})
	}
	if owner != 0 {
		if sender := c.Sender(); sender == nil || sender.ID != owner {
			return c.Respond(&tele.CallbackResponse{Text: alertNotOwner, ShowAlert: true})
		}
	}

	it.touch()
	if err := c.Respond(); err != nil {
		return err
	}
	it.push(Click{Action: action, Sender: c.Sender(), Message: c.Message()})
	return nil
}
