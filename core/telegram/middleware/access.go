package middleware

import tele "gopkg.in/telebot.v4"

// AdminOptions defines how admin-only checks behave.
type AdminOptions struct {
	AdminID  int64
	OnReject tele.HandlerFunc
}

// Allows reports whether the sender passes the admin check.
func (o AdminOptions) Allows(c tele.Context) bool {
	if o.AdminID == 0 {
		return true
	}
	sender := c.Sender()
	return sender != nil && sender.ID == o.AdminID
}

// AdminGate wraps a handler enforcing admin-only execution when required.
func AdminGate(opts AdminOptions, adminOnly bool, handler tele.HandlerFunc) tele.HandlerFunc {
	if !adminOnly || opts.AdminID == 0 {
		return handler
	}
	return func(c tele.Context) error {
		if !opts.Allows(c) {
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
		return handler(c)
	}
}
