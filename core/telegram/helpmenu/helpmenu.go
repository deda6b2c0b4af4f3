// Package helpmenu implements an interactive /help command: a front menu of
// command categories, paginated per-category listings, command detail pages,
// and an error view for unknown topics. Rendering runs on the view package;
// the command inventory comes from the telegram Registry.
package helpmenu

import (
	"context"
	"strconv"
	"strings"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/velrin/telekit/core/config"
	"github.com/velrin/telekit/core/logger"
	tg "github.com/velrin/telekit/core/telegram"
	"github.com/velrin/telekit/core/telegram/callbacks"
	"github.com/velrin/telekit/core/telegram/commands"
	"github.com/velrin/telekit/core/telegram/keyboard"
	"github.com/velrin/telekit/core/telegram/view"
)

// Callback uniques owned by the help menu.
const (
	categoryUnique = "hmc"
	homeUnique     = "hmh"
	closeUnique    = "hmx"
)

// Menu renders the /help command. Zero-value fields fall back to the
// defaults applied by New.
type Menu struct {
	Registry *tg.Registry
	Views    *view.Manager

	// PerPage bounds categories on the front menu and commands per
	// category page.
	PerPage int
	// SortCommands orders category labels alphabetically on the front menu.
	SortCommands bool
	// NoCategory labels the bucket of commands registered without one.
	NoCategory string
	// NoDocs stands in for commands without description or help text.
	NoDocs string

	// Buttons overrides navigation labels on category pages.
	Buttons    view.Buttons
	HomeLabel  string
	CloseLabel string

	// IsAdmin decides whether admin-only commands are visible to the
	// caller. Nil means nobody is an admin.
	IsAdmin func(c tele.Context) bool

	// Provider builds the individual views. Defaults to DefaultProvider.
	Provider Provider

	// Format hooks replace the default text rendering. Pages are 1-based.
	FormatFront        func(page, pages int) string
	FormatCategoryPage func(label string, names []string, page, pages int) string
	FormatCommand      func(name string, cmd commands.Command, subs []string) string
	FormatError        func(topic string) string
}

// New builds a Menu over the registry and view manager with config defaults.
func New(reg *tg.Registry, views *view.Manager, cfg config.MenuConfig) *Menu {
	m := &Menu{
		Registry:     reg,
		Views:        views,
		PerPage:      cfg.PerPage,
		SortCommands: true,
		NoCategory:   cfg.NoCategory,
		NoDocs:       cfg.NoDocs,
		HomeLabel:    "🏠",
		CloseLabel:   "✖️",
		Provider:     DefaultProvider{},
	}
	if m.PerPage <= 0 {
		m.PerPage = 6
	}
	if m.NoCategory == "" {
		m.NoCategory = "No Category"
	}
	if m.NoDocs == "" {
		m.NoDocs = "No Documentation"
	}
	return m
}

// Register installs /help and the menu's callbacks into the registry.
func (m *Menu) Register(reg *tg.Registry) {
	if reg == nil {
		reg = m.Registry
	}
	if m.Registry == nil {
		m.Registry = reg
	}
	reg.RegisterCommand("/help", commands.Command{
		Handler:     m.Handler(),
		Description: "Show available commands",
		Help:        "Browse commands by category, or ask about one command or category.",
		Params:      []commands.Param{{Name: "topic"}},
	})
	_ = reg.RegisterCallback(categoryUnique, m.handleCategory)
	_ = reg.RegisterCallback(homeUnique, m.handleHome)
	_ = reg.RegisterCallback(closeUnique, m.handleClose)
}

// Handler returns the /help command handler. With no argument it opens the
// front menu; with one it resolves a command (name or alias), then a
// category, and falls back to the error view.
func (m *Menu) Handler() tele.HandlerFunc {
	return func(c tele.Context) error {
		var topic string
		if msg := c.Message(); msg != nil {
			topic = strings.TrimSpace(msg.Payload)
		}
		admin := m.admin(c)

		if topic == "" {
			return m.showFront(c, nil, admin)
		}
		if name, cmd, ok := m.Registry.LookupCommand(topic); ok && cmd.VisibleTo(admin) {
			return m.showCommand(c, name, cmd, admin)
		}
		if key, ok := m.resolveCategory(topic, admin); ok {
			return m.showCategory(c, nil, key, admin)
		}
		return m.showError(c, topic)
	}
}

func (m *Menu) admin(c tele.Context) bool {
	return m.IsAdmin != nil && m.IsAdmin(c)
}

func ownerID(c tele.Context) int64 {
	if s := c.Sender(); s != nil {
		return s.ID
	}
	return 0
}

func sameSender(c tele.Context, owner int64) bool {
	s := c.Sender()
	return s != nil && s.ID == owner
}

// categoryLabels returns display labels of the caller's visible categories.
// The no-category bucket always sorts last.
func (m *Menu) categoryLabels(admin bool) []string {
	cats := m.Registry.Categories(admin)
	labels := make([]string, 0, len(cats))
	uncategorized := false
	for key := range cats {
		if key == "" {
			uncategorized = true
			continue
		}
		labels = append(labels, key)
	}
	if m.SortCommands {
		commands.SortNames(labels)
	}
	if uncategorized {
		labels = append(labels, m.NoCategory)
	}
	return labels
}

// resolveCategory maps a user-typed label back to the registry category key.
func (m *Menu) resolveCategory(label string, admin bool) (string, bool) {
	for key := range m.Registry.Categories(admin) {
		display := key
		if display == "" {
			display = m.NoCategory
		}
		if strings.EqualFold(display, label) {
			return key, true
		}
	}
	return "", false
}

// subcommands lists visible commands grouped under parent by naming
// convention: the parent name followed by "_" or "-".
func (m *Menu) subcommands(parent string, admin bool) []string {
	var subs []string
	for name, cmd := range m.Registry.Commands() {
		if name == parent || !cmd.VisibleTo(admin) {
			continue
		}
		rest, ok := strings.CutPrefix(name, parent)
		if !ok || rest == "" {
			continue
		}
		if rest[0] != '_' && rest[0] != '-' {
			continue
		}
		subs = append(subs, name)
	}
	commands.SortNames(subs)
	return subs
}

func (m *Menu) showFront(c tele.Context, at *tele.Message, admin bool) error {
	owner := ownerID(c)
	labels := m.categoryLabels(admin)
	if len(labels) == 0 {
		return c.Send("No commands registered yet.")
	}

	nav := view.PrevNextOnly()
	nav.Labels = m.Buttons.Labels

	pager := m.Provider.Front(m, owner, labels)
	_, err := m.Views.StartAt(c, at, pager, view.StartOptions{Owner: owner, Buttons: nav})
	logger.Menu.LogAttrs(context.Background(), slog.LevelDebug, "menu.front",
		slog.Int64("user_id", owner),
		slog.Int("pages", pager.PageCount()),
		slog.String("status", logger.Status(err)),
	)
	return err
}

func (m *Menu) showCategory(c tele.Context, at *tele.Message, key string, admin bool) error {
	owner := ownerID(c)
	names := m.Registry.CategoryCommands(key, admin)
	if len(names) == 0 {
		return m.showError(c, key)
	}
	label := key
	if label == "" {
		label = m.NoCategory
	}

	pager := m.Provider.Category(m, owner, label, names)
	_, err := m.Views.StartAt(c, at, pager, view.StartOptions{Owner: owner, Buttons: m.Buttons})
	logger.Menu.LogAttrs(context.Background(), slog.LevelDebug, "menu.category",
		slog.Int64("user_id", owner),
		slog.String("topic", label),
		slog.String("status", logger.Status(err)),
	)
	return err
}

func (m *Menu) showCommand(c tele.Context, name string, cmd commands.Command, admin bool) error {
	page := m.Provider.Command(m, name, cmd, m.subcommands(name, admin))
	logger.Menu.LogAttrs(context.Background(), slog.LevelDebug, "menu.command",
		slog.Int64("user_id", ownerID(c)),
		slog.String("topic", name),
	)
	return sendPage(c, page)
}

func (m *Menu) showError(c tele.Context, topic string) error {
	page := m.Provider.Error(m, ownerID(c), topic)
	logger.Menu.LogAttrs(context.Background(), slog.LevelDebug, "menu.error",
		slog.Int64("user_id", ownerID(c)),
		slog.String("topic", logger.Sanitize(topic)),
	)
	return sendPage(c, page)
}

func sendPage(c tele.Context, page view.Page) error {
	opts := &tele.SendOptions{
		ParseMode:             page.ParseMode,
		DisableWebPagePreview: page.DisablePreview,
	}
	if len(page.Rows) > 0 {
		opts.ReplyMarkup = &tele.ReplyMarkup{InlineKeyboard: keyboard.ToInlineKeyboard(page.Rows)}
	}
	return c.Send(page.Text, opts)
}

// handleCategory opens a category view over the front-menu message. The
// callback router has already acked the query; non-owner clicks are ignored.
func (m *Menu) handleCategory(c tele.Context) error {
	parts := callbacks.SplitPayload(callbacks.CallbackPayload(c), 2)
	if len(parts) < 2 {
		return nil
	}
	owner, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || !sameSender(c, owner) {
		return nil
	}
	admin := m.admin(c)
	key, ok := m.resolveCategory(parts[1], admin)
	if !ok {
		return nil
	}
	return m.showCategory(c, c.Message(), key, admin)
}

// handleHome re-renders the front menu over the category-view message.
func (m *Menu) handleHome(c tele.Context) error {
	parts := callbacks.SplitPayload(callbacks.CallbackPayload(c), 1)
	if len(parts) < 1 {
		return nil
	}
	owner, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || !sameSender(c, owner) {
		return nil
	}
	return m.showFront(c, c.Message(), m.admin(c))
}

// handleClose deletes the error message.
func (m *Menu) handleClose(c tele.Context) error {
	parts := callbacks.SplitPayload(callbacks.CallbackPayload(c), 1)
	if len(parts) < 1 {
		return nil
	}
	owner, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || !sameSender(c, owner) {
		return nil
	}
	return c.Delete()
}
