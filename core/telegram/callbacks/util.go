package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Sep is the payload part separator used across inline callback data.
const Sep = "|"

// ParseCallbackData parses telebot's \f<unique>|<payload> encoding.
// Returns unique and payload (payload may be empty).
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	raw = strings.TrimPrefix(raw, "\\f")
	parts := strings.SplitN(raw, Sep, 2)
	unique := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return unique, payload
}

// CallbackKey returns cb.Unique if present; otherwise parses it from Data.
func CallbackKey(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique
	}
	k, _ := ParseCallbackData(cb)
	return k
}

// CallbackPayload returns the payload (after '|') parsed from Data.
// cb.Data is preferred since cb.Unique may be empty in generic OnCallback.
func CallbackPayload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	_, payload := ParseCallbackData(cb)
	return payload
}

// JoinPayload joins payload parts with the callback separator.
func JoinPayload(parts ...string) string {
	return strings.Join(parts, Sep)
}

// SplitPayload splits a payload into at most n parts.
func SplitPayload(payload string, n int) []string {
	if payload == "" {
		return nil
	}
	return strings.SplitN(payload, Sep, n)
}
