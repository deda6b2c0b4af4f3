package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/velrin/telekit/core/logger"

	tele "gopkg.in/telebot.v4"
)

type sqlManager struct {
	db *sqlx.DB

	mu       sync.RWMutex
	handlers map[State]tele.HandlerFunc
}

// NewSQLManager constructs a Postgres-backed Manager. Conversation state and
// temp data survive restarts; state handlers are still registered per process.
func NewSQLManager(db *sqlx.DB) Manager {
	return &sqlManager{
		db:       db,
		handlers: make(map[State]tele.HandlerFunc),
	}
}

type sessionRow struct {
	UserID   int64  `db:"user_id"`
	State    string `db:"state"`
	TempData []byte `db:"temp_data"`
}

func (m *sqlManager) load(userID int64) (*Session, bool) {
	var row sessionRow
	err := m.db.Get(&row, `SELECT user_id, state, temp_data FROM tg_sessions WHERE user_id = $1`, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.DB.Error("session load failed",
				slog.String("event", "state.load.fail"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return nil, false
	}

	temp := make(map[string]any)
	if len(row.TempData) > 0 {
		if err := json.Unmarshal(row.TempData, &temp); err != nil {
			logger.DB.Warn("session temp data corrupt",
				slog.String("event", "state.decode.fail"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
			temp = make(map[string]any)
		}
	}
	return &Session{State: State(row.State), TempData: temp}, true
}

func (m *sqlManager) store(userID int64, sess *Session) {
	data, err := json.Marshal(sess.TempData)
	if err != nil {
		logger.DB.Error("session temp data encode failed",
			slog.String("event", "state.encode.fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		data = []byte("{}")
	}
	_, err = m.db.Exec(`
		INSERT INTO tg_sessions (user_id, state, temp_data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id)
		DO UPDATE SET state = EXCLUDED.state, temp_data = EXCLUDED.temp_data, updated_at = now()`,
		userID, string(sess.State), data,
	)
	if err != nil {
		logger.DB.Error("session store failed",
			slog.String("event", "state.store.fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

// Get returns the persisted session for a user, or a default idle session.
func (m *sqlManager) Get(userID int64) *Session {
	if sess, ok := m.load(userID); ok {
		return sess
	}
	return &Session{State: StateIdle, TempData: make(map[string]any)}
}

// SetTemp stores a temporary key/value pair in the persisted session.
// Values must be JSON-encodable.
func (m *sqlManager) SetTemp(userID int64, key string, value any) {
	sess := m.Get(userID)
	sess.TempData[key] = value
	m.store(userID, sess)
}

// GetTemp retrieves a temporary value by key.
func (m *sqlManager) GetTemp(userID int64, key string) (any, bool) {
	sess, ok := m.load(userID)
	if !ok {
		return nil, false
	}
	val, ok := sess.TempData[key]
	return val, ok
}

// GetTempInt64 retrieves a temporary value by key as int64. JSON numbers
// decode as float64, so both representations are accepted.
func (m *sqlManager) GetTempInt64(userID int64, key string) (int64, bool) {
	val, found := m.GetTemp(userID, key)
	if !found {
		return 0, false
	}
	switch v := val.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// ClearTemp removes a temporary key/value pair.
func (m *sqlManager) ClearTemp(userID int64, key string) {
	sess, ok := m.load(userID)
	if !ok {
		return
	}
	delete(sess.TempData, key)
	m.store(userID, sess)
}

// Clear removes the entire persisted session for a user.
func (m *sqlManager) Clear(userID int64) {
	if _, err := m.db.Exec(`DELETE FROM tg_sessions WHERE user_id = $1`, userID); err != nil {
		logger.DB.Error("session clear failed",
			slog.String("event", "state.clear.fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

// SetState sets the FSM state for the given user.
func (m *sqlManager) SetState(userID int64, st State) {
	sess := m.Get(userID)
	sess.State = st
	m.store(userID, sess)
}

// GetState returns the current FSM state of a user, or StateIdle.
func (m *sqlManager) GetState(userID int64) State {
	if sess, ok := m.load(userID); ok {
		return sess.State
	}
	return StateIdle
}

// ClearState resets the FSM state to idle without removing session data.
func (m *sqlManager) ClearState(userID int64) {
	sess, ok := m.load(userID)
	if !ok {
		return
	}
	sess.State = StateIdle
	m.store(userID, sess)
}

// HasState checks if a user has an active state other than idle.
func (m *sqlManager) HasState(userID int64) bool {
	sess, ok := m.load(userID)
	return ok && sess.State != StateIdle
}

// InProgress reports whether the user currently has an active FSM state.
func (m *sqlManager) InProgress(userID int64) bool {
	return m.HasState(userID)
}

// Handle registers the handler invoked by Dispatch for the given state.
func (m *sqlManager) Handle(st State, handler tele.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[st] = handler
}

// Dispatch runs the handler registered for the sender's current state, if any.
func (m *sqlManager) Dispatch(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	current := m.GetState(sender.ID)

	m.mu.RLock()
	handler, ok := m.handlers[current]
	m.mu.RUnlock()
	if ok {
		return handler(c)
	}
	return nil
}
