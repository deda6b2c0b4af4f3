package callbacks

import (
	"testing"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	cb *tele.Callback
}

func (f *fakeContext) Callback() *tele.Callback { return f.cb }

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		unique  string
		payload string
	}{
		{"plain", "pgv|sid|next", "pgv", "sid|next"},
		{"form_feed", "\fpgv|sid|next", "pgv", "sid|next"},
		{"escaped", "\\fpgv|sid", "pgv", "sid"},
		{"no_payload", "\fpgv", "pgv", ""},
		{"empty", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			unique, payload := ParseCallbackData(&tele.Callback{Data: tc.data})
			require.Equal(t, tc.unique, unique)
			require.Equal(t, tc.payload, payload)
		})
	}

	unique, payload := ParseCallbackData(nil)
	require.Empty(t, unique)
	require.Empty(t, payload)
}

func TestCallbackKeyPrefersUnique(t *testing.T) {
	c := &fakeContext{cb: &tele.Callback{Unique: "itr", Data: "\fpgv|x"}}
	require.Equal(t, "itr", CallbackKey(c))

	c = &fakeContext{cb: &tele.Callback{Data: "\fpgv|x"}}
	require.Equal(t, "pgv", CallbackKey(c))
}

func TestJoinSplitPayload(t *testing.T) {
	joined := JoinPayload("a", "b", "c")
	require.Equal(t, "a|b|c", joined)

	require.Equal(t, []string{"a", "b|c"}, SplitPayload(joined, 2))
	require.Equal(t, []string{"a", "b", "c"}, SplitPayload(joined, -1))
	require.Nil(t, SplitPayload("", 2))
}

func TestPayloadHelpers(t *testing.T) {
	c := &fakeContext{cb: &tele.Callback{Data: "\fdel|42"}}
	n, err := PayloadInt64(c)
	require.NoError(t, err)
	require.EqualValues(t, 42, n)

	c = &fakeContext{cb: &tele.Callback{Data: "\fmove|7|up"}}
	key, value, err := PayloadPair(c)
	require.NoError(t, err)
	require.Equal(t, "7", key)
	require.Equal(t, "up", value)

	c = &fakeContext{cb: &tele.Callback{Data: "\fnoop"}}
	_, _, err = PayloadPair(c)
	require.Error(t, err)
}
