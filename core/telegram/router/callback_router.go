package router

import (
	"time"

	"log/slog"

	tg "github.com/velrin/telekit/core/telegram"
	"github.com/velrin/telekit/core/telegram/callbacks"
	"github.com/velrin/telekit/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// ViewRouter gets first refusal on incoming callbacks. Implemented by the
// pagination view manager.
type ViewRouter interface {
	// HandleCallback reports whether it claimed the callback.
	HandleCallback(c tele.Context) (bool, error)
}

// CallbackOptions customises callback routing behaviour.
type CallbackOptions struct {
	// Views, when set, is consulted before registry callbacks.
	Views    ViewRouter
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks through the view
// manager first, then the registry, then the not-found fallback.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key, _ := callbacks.ParseCallbackData(c.Callback())
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		if opts.Views != nil {
			claimed, verr := opts.Views.HandleCallback(c)
			if claimed {
				logHandlerSummary(c, name, start, "", "", verr, extras...)
				return verr
			}
		}

		_ = c.Respond()

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, "", "", func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		return handleWithSummary(c, name, start, "", "", func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
