package helpmenu

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/velrin/telekit/core/config"
	tg "github.com/velrin/telekit/core/telegram"
	"github.com/velrin/telekit/core/telegram/commands"
	"github.com/velrin/telekit/core/telegram/view"
)

type fakeAPI struct {
	mu    sync.Mutex
	sent  int
	edits []interface{}
}

func (f *fakeAPI) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent++
	return &tele.Message{ID: f.sent, Chat: &tele.Chat{ID: 10}}, nil
}

func (f *fakeAPI) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, what)
	return &tele.Message{ID: 1, Chat: &tele.Chat{ID: 10}}, nil
}

func (f *fakeAPI) Delete(msg tele.Editable) error { return nil }

type fakeContext struct {
	tele.Context
	cb      *tele.Callback
	sender  *tele.User
	msg     *tele.Message
	sends   []interface{}
	opts    []*tele.SendOptions
	deleted bool
}

func (f *fakeContext) Callback() *tele.Callback  { return f.cb }
func (f *fakeContext) Sender() *tele.User        { return f.sender }
func (f *fakeContext) Message() *tele.Message    { return f.msg }
func (f *fakeContext) Recipient() tele.Recipient { return &tele.Chat{ID: 10} }
func (f *fakeContext) Delete() error {
	f.deleted = true
	return nil
}

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sends = append(f.sends, what)
	for _, o := range opts {
		if so, ok := o.(*tele.SendOptions); ok {
			f.opts = append(f.opts, so)
		}
	}
	return nil
}

func testRegistry() *tg.Registry {
	reg := tg.NewRegistry()
	noop := func(tele.Context) error { return nil }
	reg.RegisterCommand("/ping", commands.Command{
		Handler:     noop,
		Description: "Check liveness",
		Category:    "Utility",
		Aliases:     []string{"p"},
	})
	reg.RegisterCommand("/roll", commands.Command{
		Handler:     noop,
		Description: "Roll dice",
		Category:    "Fun",
		Params:      []commands.Param{{Name: "sides", Default: "6"}},
	})
	reg.RegisterCommand("/joke", commands.Command{
		Handler:     noop,
		Description: "Tell a joke",
		Category:    "Fun",
	})
	reg.RegisterCommand("/note", commands.Command{
		Handler:     noop,
		Description: "Manage notes",
	})
	reg.RegisterCommand("/note_add", commands.Command{
		Handler:     noop,
		Description: "Add a note",
	})
	reg.RegisterCommand("/ban", commands.Command{
		Handler:     noop,
		Description: "Ban a user",
		Category:    "Admin",
		AdminOnly:   true,
	})
	return reg
}

func testMenu(api *fakeAPI) *Menu {
	reg := testRegistry()
	views := view.NewManager(view.Options{Bot: api, Timeout: time.Hour})
	return New(reg, views, config.MenuConfig{PerPage: 2})
}

func userContext(id int64, payload string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: id},
		msg:    &tele.Message{ID: 99, Chat: &tele.Chat{ID: 10}, Payload: payload},
	}
}

func TestNewDefaults(t *testing.T) {
	m := New(nil, nil, config.MenuConfig{})
	require.Equal(t, 6, m.PerPage)
	require.Equal(t, "No Category", m.NoCategory)
	require.Equal(t, "No Documentation", m.NoDocs)
	require.True(t, m.SortCommands)
	require.NotNil(t, m.Provider)
}

func TestCategoryLabels(t *testing.T) {
	m := testMenu(&fakeAPI{})

	labels := m.categoryLabels(false)
	require.Equal(t, []string{"Fun", "Utility", "No Category"}, labels)

	labels = m.categoryLabels(true)
	require.Equal(t, []string{"Admin", "Fun", "Utility", "No Category"}, labels)
}

func TestResolveCategory(t *testing.T) {
	m := testMenu(&fakeAPI{})

	key, ok := m.resolveCategory("fun", false)
	require.True(t, ok)
	require.Equal(t, "Fun", key)

	key, ok = m.resolveCategory("no category", false)
	require.True(t, ok)
	require.Equal(t, "", key)

	_, ok = m.resolveCategory("Admin", false)
	require.False(t, ok)
	_, ok = m.resolveCategory("Admin", true)
	require.True(t, ok)
}

func TestSubcommands(t *testing.T) {
	m := testMenu(&fakeAPI{})
	require.Equal(t, []string{"/note_add"}, m.subcommands("/note", false))
	require.Empty(t, m.subcommands("/ping", false))
}

func TestFrontPagerButtons(t *testing.T) {
	m := testMenu(&fakeAPI{})

	pager := m.Provider.Front(m, 7, m.categoryLabels(false))
	require.Equal(t, 2, pager.PageCount())

	page, err := pager.Render()
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)
	require.Equal(t, "Fun", page.Rows[0][0].Text)
	require.Equal(t, categoryUnique, page.Rows[0][0].Unique)
	require.Equal(t, "7|Fun", page.Rows[0][0].Data)
	require.Contains(t, page.Text, "Page 1 of 2")
}

func TestHandlerFrontStartsView(t *testing.T) {
	api := &fakeAPI{}
	m := testMenu(api)

	require.NoError(t, m.Handler()(userContext(7, "")))
	require.Equal(t, 1, api.sent)
}

func TestHandlerCommandDetail(t *testing.T) {
	m := testMenu(&fakeAPI{})

	c := userContext(7, "roll")
	require.NoError(t, m.Handler()(c))
	require.Len(t, c.sends, 1)

	text := c.sends[0].(string)
	require.Contains(t, text, "roll")
	require.Contains(t, text, "[sides=6]")
	require.Contains(t, text, "Roll dice")
}

func TestHandlerCommandAlias(t *testing.T) {
	m := testMenu(&fakeAPI{})

	c := userContext(7, "p")
	require.NoError(t, m.Handler()(c))
	require.Len(t, c.sends, 1)
	require.Contains(t, c.sends[0].(string), "ping")
}

func TestHandlerCategoryDirect(t *testing.T) {
	api := &fakeAPI{}
	m := testMenu(api)

	require.NoError(t, m.Handler()(userContext(7, "Fun")))
	require.Equal(t, 1, api.sent)
}

func TestHandlerUnknownTopic(t *testing.T) {
	m := testMenu(&fakeAPI{})

	c := userContext(7, "nonsense")
	require.NoError(t, m.Handler()(c))
	require.Len(t, c.sends, 1)
	require.Contains(t, c.sends[0].(string), "nonsense")

	require.Len(t, c.opts, 1)
	require.NotNil(t, c.opts[0].ReplyMarkup)
	btn := c.opts[0].ReplyMarkup.InlineKeyboard[0][0]
	require.Equal(t, "7", btn.Data)
}

func TestHandlerAdminOnlyHidden(t *testing.T) {
	m := testMenu(&fakeAPI{})

	c := userContext(7, "ban")
	require.NoError(t, m.Handler()(c))
	require.Len(t, c.sends, 1)
	require.Contains(t, c.sends[0].(string), "No command or category")

	m.IsAdmin = func(tele.Context) bool { return true }
	c = userContext(7, "ban")
	require.NoError(t, m.Handler()(c))
	require.Contains(t, c.sends[0].(string), "Ban a user")
}

func TestCommandTextSubcommands(t *testing.T) {
	m := testMenu(&fakeAPI{})
	_, cmd, ok := m.Registry.LookupCommand("/note")
	require.True(t, ok)

	text := m.commandText("/note", cmd, m.subcommands("/note", false))
	require.Contains(t, text, "Subcommands")
	require.Contains(t, text, "note_add")
}

func TestCategoryCallbackEditsInPlace(t *testing.T) {
	api := &fakeAPI{}
	m := testMenu(api)

	c := &fakeContext{
		cb:     &tele.Callback{Data: "\f" + categoryUnique + "|7|Fun"},
		sender: &tele.User{ID: 7},
		msg:    &tele.Message{ID: 5, Chat: &tele.Chat{ID: 10}},
	}
	require.NoError(t, m.handleCategory(c))
	require.Equal(t, 0, api.sent)
	require.Len(t, api.edits, 1)
	require.Contains(t, api.edits[0].(string), "Fun")
}

func TestCategoryCallbackIgnoresNonOwner(t *testing.T) {
	api := &fakeAPI{}
	m := testMenu(api)

	c := &fakeContext{
		cb:     &tele.Callback{Data: "\f" + categoryUnique + "|7|Fun"},
		sender: &tele.User{ID: 999},
		msg:    &tele.Message{ID: 5, Chat: &tele.Chat{ID: 10}},
	}
	require.NoError(t, m.handleCategory(c))
	require.Equal(t, 0, api.sent)
	require.Empty(t, api.edits)
}

func TestHomeCallback(t *testing.T) {
	api := &fakeAPI{}
	m := testMenu(api)

	c := &fakeContext{
		cb:     &tele.Callback{Data: "\f" + homeUnique + "|7"},
		sender: &tele.User{ID: 7},
		msg:    &tele.Message{ID: 5, Chat: &tele.Chat{ID: 10}},
	}
	require.NoError(t, m.handleHome(c))
	require.Equal(t, 0, api.sent)
	require.Len(t, api.edits, 1)
}

func TestCloseCallback(t *testing.T) {
	m := testMenu(&fakeAPI{})

	c := &fakeContext{
		cb:     &tele.Callback{Data: "\f" + closeUnique + "|7"},
		sender: &tele.User{ID: 7},
	}
	require.NoError(t, m.handleClose(c))
	require.True(t, c.deleted)

	c = &fakeContext{
		cb:     &tele.Callback{Data: "\f" + closeUnique + "|7"},
		sender: &tele.User{ID: 999},
	}
	require.NoError(t, m.handleClose(c))
	require.False(t, c.deleted)
}

func TestRegisterInstallsEverything(t *testing.T) {
	m := testMenu(&fakeAPI{})
	m.Register(m.Registry)

	_, _, ok := m.Registry.LookupCommand("/help")
	require.True(t, ok)
	for _, key := range []string{categoryUnique, homeUnique, closeUnique} {
		_, found := m.Registry.GetCallback(key)
		require.True(t, found, key)
	}
}
