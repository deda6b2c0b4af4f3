package state

import (
	"testing"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	sender *tele.User
	store  map[string]any
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: userID}, store: map[string]any{}}
}

func (f *fakeContext) Sender() *tele.User  { return f.sender }
func (f *fakeContext) Chat() *tele.Chat    { return &tele.Chat{ID: 10} }
func (f *fakeContext) Update() tele.Update { return tele.Update{ID: 1} }
func (f *fakeContext) Get(key string) any  { return f.store[key] }
func (f *fakeContext) Set(key string, v any) {
	f.store[key] = v
}

func TestMemoryStateLifecycle(t *testing.T) {
	m := NewMemoryManager()

	require.Equal(t, StateIdle, m.GetState(1))
	require.False(t, m.InProgress(1))

	m.SetState(1, "awaiting_name")
	require.Equal(t, State("awaiting_name"), m.GetState(1))
	require.True(t, m.HasState(1))
	require.True(t, m.InProgress(1))
	require.False(t, m.InProgress(2))

	m.ClearState(1)
	require.Equal(t, StateIdle, m.GetState(1))
	require.False(t, m.InProgress(1))
}

func TestMemoryTempData(t *testing.T) {
	m := NewMemoryManager()

	m.SetTemp(1, "count", int64(3))
	v, ok := m.GetTempInt64(1, "count")
	require.True(t, ok)
	require.EqualValues(t, 3, v)

	_, ok = m.GetTemp(1, "missing")
	require.False(t, ok)
	_, ok = m.GetTemp(2, "count")
	require.False(t, ok)

	m.ClearTemp(1, "count")
	_, ok = m.GetTemp(1, "count")
	require.False(t, ok)

	m.SetTemp(1, "k", "v")
	m.SetState(1, "busy")
	m.Clear(1)
	require.Equal(t, StateIdle, m.GetState(1))
	_, ok = m.GetTemp(1, "k")
	require.False(t, ok)
}

func TestMemoryDispatch(t *testing.T) {
	m := NewMemoryManager()

	var dispatched []State
	m.Handle("awaiting_name", func(c tele.Context) error {
		dispatched = append(dispatched, "awaiting_name")
		return nil
	})

	// Idle users have no handler; dispatch is a no-op.
	require.NoError(t, m.Dispatch(newFakeContext(1)))
	require.Empty(t, dispatched)

	m.SetState(1, "awaiting_name")
	require.NoError(t, m.Dispatch(newFakeContext(1)))
	require.Equal(t, []State{"awaiting_name"}, dispatched)

	// Unregistered states dispatch to nothing.
	m.SetState(1, "unknown")
	require.NoError(t, m.Dispatch(newFakeContext(1)))
	require.Len(t, dispatched, 1)
}
