package view

import (
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"

	"github.com/velrin/telekit/core/logger"
	"github.com/velrin/telekit/core/telegram/callbacks"
	"github.com/velrin/telekit/core/telegram/keyboard"
)

// Callback uniques claimed by the manager.
const (
	CallbackUnique = "pgv"
	iterUnique     = "itr"
)

const defaultTimeout = 3 * time.Minute

const (
	alertExpired  = "This view has expired."
	alertNotOwner = "You can't control this view."
)

// API is the narrow slice of *tele.Bot the view layer needs.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
}

// Options configures a Manager.
type Options struct {
	// Timeout is the default inactivity timeout for sessions and
	// iterators. Zero means 3 minutes.
	Timeout time.Duration
	// ClickQueueSize bounds each iterator's pending click queue.
	// Zero means 32.
	ClickQueueSize int
	// Bot overrides the API used for sends and edits; when nil the bot
	// of the triggering context is used.
	Bot API
}

// Manager owns live view sessions and iterators, routing their callbacks.
// It implements the router's first-refusal callback interface.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	iterators map[string]*Iterator

	bot       API
	timeout   time.Duration
	queueSize int
}

// NewManager returns an empty manager.
func NewManager(opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.ClickQueueSize <= 0 {
		opts.ClickQueueSize = 32
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		iterators: make(map[string]*Iterator),
		bot:       opts.Bot,
		timeout:   opts.Timeout,
		queueSize: opts.ClickQueueSize,
	}
}

// StartOptions customises one view session.
type StartOptions struct {
	// Owner defaults to the sender of the triggering update. Only the
	// owner may interact with the view.
	Owner int64
	// Buttons overrides navigation labels and layout.
	Buttons Buttons
	// DeleteAfter deletes the message on stop instead of stripping the
	// keyboard.
	DeleteAfter bool
	// Timeout overrides the manager default for this session.
	Timeout time.Duration
	// OnStop runs once when the session ends (stop button, programmatic
	// stop, or timeout), before the message is deleted or stripped.
	OnStop func(s *Session)
}

// Session is one live paginated view bound to a message.
type Session struct {
	id      string
	manager *Manager
	bot     API
	pager   Paginator
	buttons Buttons

	// nav serializes the navigate/render/edit sequence so concurrent
	// callbacks on one session cannot interleave page changes.
	nav sync.Mutex

	mu          sync.Mutex
	msg         *tele.Message
	owner       int64
	deleteAfter bool
	timeout     time.Duration
	timer       *time.Timer
	onStop      func(*Session)
	stopped     bool
}

// ID returns the session identifier used in callback payloads.
func (s *Session) ID() string { return s.id }

// Message returns the message the view lives on.
func (s *Session) Message() *tele.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// Start renders the first page and sends it as a new message, registering
// the session for callback routing.
func (m *Manager) Start(c tele.Context, p Paginator, opts StartOptions) (*Session, error) {
	return m.start(c, nil, p, opts)
}

// StartAt renders the first page over an existing message via edit. Used by
// flows that keep one message alive across views.
func (m *Manager) StartAt(c tele.Context, msg *tele.Message, p Paginator, opts StartOptions) (*Session, error) {
	if msg == nil {
		return m.start(c, nil, p, opts)
	}
	return m.start(c, msg, p, opts)
}

func (m *Manager) start(c tele.Context, at *tele.Message, p Paginator, opts StartOptions) (*Session, error) {
	if p == nil || p.PageCount() == 0 {
		return nil, ErrEmptySource
	}
	if at != nil {
		m.Detach(at)
	}

	owner := opts.Owner
	if owner == 0 {
		if sender := c.Sender(); sender != nil {
			owner = sender.ID
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = m.timeout
	}

	bot := m.bot
	if bot == nil {
		bot = c.Bot()
	}

	sess := &Session{
		id:          uuid.NewString(),
		manager:     m,
		bot:         bot,
		pager:       p,
		buttons:     opts.Buttons,
		owner:       owner,
		deleteAfter: opts.DeleteAfter,
		timeout:     timeout,
		onStop:      opts.OnStop,
	}

	page, err := p.Render()
	if err != nil {
		return nil, err
	}
	markup := sess.markup(page)
	sendOpts := sendOptions(page, markup)

	var msg *tele.Message
	if at != nil {
		msg, err = sess.bot.Edit(at, page.Text, sendOpts)
	} else {
		msg, err = sess.bot.Send(c.Recipient(), page.Text, sendOpts)
	}
	if err != nil {
		return nil, err
	}
	sess.msg = msg

	m.mu.Lock()
	m.sessions[sess.id] = sess
	m.mu.Unlock()

	sess.mu.Lock()
	sess.timer = time.AfterFunc(timeout, func() { sess.expire() })
	sess.mu.Unlock()

	logger.View.Debug("view started",
		slog.String("event", "view.start"),
		slog.String("sid", sess.id),
		slog.Int("pages", p.PageCount()),
		slog.Int64("user_id", owner),
	)
	return sess, nil
}

// Refresh re-renders the current page onto the view's message. Call it
// after changing the pager's source.
func (s *Session) Refresh() error {
	s.nav.Lock()
	defer s.nav.Unlock()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	msg := s.msg
	s.mu.Unlock()

	page, err := s.pager.Render()
	if err != nil {
		return err
	}
	edited, err := s.bot.Edit(msg, page.Text, sendOptions(page, s.markup(page)))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.msg = edited
	s.mu.Unlock()
	return nil
}

// Stop ends the session programmatically, applying the stop semantics.
func (s *Session) Stop() {
	s.finish("stopped")
}

func (s *Session) markup(page Page) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := append([][]tele.Btn{}, page.Rows...)
	if nav := navRow(markup, s.id, s.pager.PageIndex(), s.pager.PageCount(), s.buttons); len(nav) > 0 {
		rows = append(rows, nav)
	}
	markup.InlineKeyboard = keyboard.ToInlineKeyboard(rows)
	return markup
}

func sendOptions(page Page, markup *tele.ReplyMarkup) *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:             page.ParseMode,
		ReplyMarkup:           markup,
		DisableWebPagePreview: page.DisablePreview,
	}
}

// touch restarts the inactivity timer after an owner interaction.
func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.timer == nil {
		return
	}
	s.timer.Reset(s.timeout)
}

func (s *Session) expire() {
	s.finish("expired")
}

// finish applies stop semantics exactly once: run the hook, then delete the
// message or strip its keyboard, and deregister.
func (s *Session) finish(reason string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	msg := s.msg
	deleteAfter := s.deleteAfter
	onStop := s.onStop
	s.mu.Unlock()

	s.manager.remove(s.id)

	if onStop != nil {
		onStop(s)
	}

	if msg != nil {
		var err error
		if deleteAfter {
			err = s.bot.Delete(msg)
		} else {
			_, err = s.bot.Edit(msg, keyboard.Empty())
		}
		if err != nil {
			logger.View.Warn("view teardown failed",
				slog.String("event", "view.stop"),
				slog.String("sid", s.id),
				slog.String("err", err.Error()),
			)
		}
	}

	logger.View.Debug("view finished",
		slog.String("event", "view.stop"),
		slog.String("sid", s.id),
		slog.String("status", reasonStatus(reason)),
	)
}

func reasonStatus(reason string) string {
	if reason == "expired" {
		return "expired"
	}
	return "ok"
}

// Detach releases any session bound to msg without editing or deleting it.
// Used when another view takes the message over; the stale session's buttons
// answer as expired from then on.
func (m *Manager) Detach(msg *tele.Message) {
	if msg == nil || msg.Chat == nil {
		return
	}
	m.mu.RLock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.RUnlock()

	for _, s := range live {
		bound := s.Message()
		if bound == nil || bound.Chat == nil {
			continue
		}
		if bound.Chat.ID == msg.Chat.ID && bound.ID == msg.ID {
			s.detach()
		}
	}
}

// detach marks the session stopped without touching the message.
func (s *Session) detach() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.manager.remove(s.id)
}

func (m *Manager) remove(sid string) {
	m.mu.Lock()
	delete(m.sessions, sid)
	m.mu.Unlock()
}

func (m *Manager) session(sid string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sid]
	return s, ok
}

// HandleCallback claims callbacks addressed to view sessions or iterators.
// It reports false for callbacks that belong to someone else.
func (m *Manager) HandleCallback(c tele.Context) (bool, error) {
	cb := c.Callback()
	if cb == nil {
		return false, nil
	}
	unique, payload := callbacks.ParseCallbackData(cb)
	switch unique {
	case CallbackUnique:
		return true, m.handleNav(c, payload)
	case iterUnique:
		return true, m.handleIterClick(c, payload)
	}
	return false, nil
}

func (m *Manager) handleNav(c tele.Context, payload string) error {
	parts := callbacks.SplitPayload(payload, 2)
	if len(parts) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: alertExpired})
	}
	sid, action := parts[0], Action(parts[1])

	sess, ok := m.session(sid)
	if !ok {
		_ = c.Respond(&tele.CallbackResponse{Text: alertExpired})
		_ = c.Edit(keyboard.Empty())
		return nil
	}

	if sender := c.Sender(); sender == nil || sender.ID != sess.owner {
		return c.Respond(&tele.CallbackResponse{Text: alertNotOwner, ShowAlert: true})
	}

	sess.touch()

	if action == ActionStop {
		if err := c.Respond(); err != nil {
			return err
		}
		sess.finish("stopped")
		return nil
	}

	sess.nav.Lock()
	defer sess.nav.Unlock()

	pages := sess.pager.PageCount()
	current := sess.pager.PageIndex()
	target := action.target(current, pages)
	target = clamp(target, pages)
	if target == current {
		return c.Respond()
	}

	sess.pager.SetPage(target)
	page, err := sess.pager.Render()
	if err != nil {
		sess.pager.SetPage(current)
		_ = c.Respond(&tele.CallbackResponse{Text: "Failed to render page."})
		return err
	}

	if err := c.Respond(); err != nil {
		return err
	}
	if err := c.Edit(page.Text, sendOptions(page, sess.markup(page))); err != nil {
		return err
	}
	if msg := c.Message(); msg != nil {
		sess.mu.Lock()
		sess.msg = msg
		sess.mu.Unlock()
	}

	logger.View.Debug("view page",
		slog.String("event", "view.page"),
		slog.String("sid", sid),
		slog.String("action", string(action)),
		slog.Int("page", target),
		slog.Int("pages", pages),
	)
	return nil
}
