package state

import tele "gopkg.in/telebot.v4"

const sessionKey = "fsm_session"

// WithSession injects the sender's session into the handler context.
func WithSession(mgr Manager) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if sender := c.Sender(); sender != nil {
				c.Set(sessionKey, mgr.Get(sender.ID))
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by WithSession, if any.
func SessionFrom(c tele.Context) (*Session, bool) {
	s, ok := c.Get(sessionKey).(*Session)
	return s, ok
}
