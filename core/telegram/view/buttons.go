package view

import (
	tele "gopkg.in/telebot.v4"

	"github.com/velrin/telekit/core/telegram/callbacks"
)

// Action identifies a navigation button of a paginated view.
type Action string

const (
	ActionFirst Action = "first"
	ActionPrev  Action = "prev"
	ActionStop  Action = "stop"
	ActionNext  Action = "next"
	ActionLast  Action = "last"
)

var defaultLabels = map[Action]string{
	ActionFirst: "⏪",
	ActionPrev:  "◀️",
	ActionStop:  "⏹️",
	ActionNext:  "▶️",
	ActionLast:  "⏩",
}

var navOrder = []Action{ActionFirst, ActionPrev, ActionStop, ActionNext, ActionLast}

// Buttons customises the navigation row: label overrides per action and
// actions to omit entirely.
type Buttons struct {
	Labels map[Action]string
	Omit   []Action
}

// PrevNextOnly returns a Buttons that renders only prev/next navigation.
func PrevNextOnly() Buttons {
	return Buttons{Omit: []Action{ActionFirst, ActionStop, ActionLast}}
}

func (b Buttons) label(a Action) string {
	if b.Labels != nil {
		if custom, ok := b.Labels[a]; ok && custom != "" {
			return custom
		}
	}
	return defaultLabels[a]
}

func (b Buttons) omitted(a Action) bool {
	for _, o := range b.Omit {
		if o == a {
			return true
		}
	}
	return false
}

// navRow builds the navigation row for the given position. Buttons that
// cannot apply are left out: first/prev on the first page, next/last on the
// final page, and the whole row when there is a single page. Telegram
// cannot disable inline buttons, so absence stands in for disabled.
func navRow(markup *tele.ReplyMarkup, sid string, page, pages int, b Buttons) []tele.Btn {
	if pages <= 1 {
		return nil
	}
	var row []tele.Btn
	for _, action := range navOrder {
		if b.omitted(action) {
			continue
		}
		switch action {
		case ActionFirst, ActionPrev:
			if page == 0 {
				continue
			}
		case ActionNext, ActionLast:
			if page >= pages-1 {
				continue
			}
		}
		row = append(row, markup.Data(b.label(action), CallbackUnique, callbacks.JoinPayload(sid, string(action))))
	}
	return row
}

// target resolves a navigation action to the page index it selects.
func (a Action) target(page, pages int) int {
	switch a {
	case ActionFirst:
		return 0
	case ActionPrev:
		return page - 1
	case ActionNext:
		return page + 1
	case ActionLast:
		return pages - 1
	}
	return page
}
