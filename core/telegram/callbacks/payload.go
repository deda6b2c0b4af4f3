package callbacks

import (
	"strconv"

	tele "gopkg.in/telebot.v4"
)

// PayloadInt64 parses the callback payload as int64.
func PayloadInt64(c tele.Context) (int64, error) {
	return strconv.ParseInt(CallbackPayload(c), 10, 64)
}

// PayloadInt parses the callback payload as int.
func PayloadInt(c tele.Context) (int, error) {
	return strconv.Atoi(CallbackPayload(c))
}

// PayloadParts splits the callback payload into parts.
func PayloadParts(c tele.Context) ([]string, error) {
	p := CallbackPayload(c)
	if p == "" {
		return nil, strconv.ErrSyntax
	}
	return SplitPayload(p, -1), nil
}

// PayloadPair parses a payload like "<key>|<value>" into its two halves.
func PayloadPair(c tele.Context) (string, string, error) {
	parts, err := PayloadParts(c)
	if err != nil {
		return "", "", err
	}
	if len(parts) < 2 {
		return "", "", strconv.ErrSyntax
	}
	return parts[0], JoinPayload(parts[1:]...), nil
}
