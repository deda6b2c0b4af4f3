package view

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func textPage(_ *Pager[string], item string) (Page, error) {
	return Page{Text: item}, nil
}

func TestPagerClampsStartPage(t *testing.T) {
	p := NewPager([]string{"a", "b", "c"}, textPage, WithStartPage[string](10))
	require.Equal(t, 2, p.PageIndex())

	p.SetPage(-5)
	require.Equal(t, 0, p.PageIndex())

	p.SetPage(1)
	require.Equal(t, 1, p.PageIndex())
	require.Equal(t, "b", p.Item())
}

func TestPagerRenderEmpty(t *testing.T) {
	p := NewPager(nil, textPage)
	_, err := p.Render()
	require.ErrorIs(t, err, ErrEmptySource)
}

func TestPagerCache(t *testing.T) {
	calls := 0
	p := NewPager([]string{"a", "b"}, func(_ *Pager[string], item string) (Page, error) {
		calls++
		return Page{Text: item}, nil
	}, WithCache[string]())

	for i := 0; i < 3; i++ {
		page, err := p.Render()
		require.NoError(t, err)
		require.Equal(t, "a", page.Text)
	}
	require.Equal(t, 1, calls)

	p.SetPage(1)
	_, err := p.Render()
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	p.SetPage(0)
	_, err = p.Render()
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	p.ClearCache()
	_, err = p.Render()
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestPagerSetItemsResetsCache(t *testing.T) {
	calls := 0
	p := NewPager([]string{"a"}, func(_ *Pager[string], item string) (Page, error) {
		calls++
		return Page{Text: item}, nil
	}, WithCache[string]())

	_, err := p.Render()
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	p.SetItems([]string{"x", "y"}, 5)
	require.Equal(t, 1, p.PageIndex())
	require.Equal(t, 2, p.PageCount())

	page, err := p.Render()
	require.NoError(t, err)
	require.Equal(t, "y", page.Text)
	require.Equal(t, 2, calls)
}

func TestPagerFormatError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPager([]string{"a"}, func(_ *Pager[string], _ string) (Page, error) {
		return Page{}, boom
	})
	_, err := p.Render()
	require.ErrorIs(t, err, boom)
}

func rowLabels(row []tele.Btn) []string {
	labels := make([]string, 0, len(row))
	for _, b := range row {
		labels = append(labels, b.Text)
	}
	return labels
}

func TestNavRowSinglePage(t *testing.T) {
	markup := &tele.ReplyMarkup{}
	require.Nil(t, navRow(markup, "sid", 0, 1, Buttons{}))
	require.Nil(t, navRow(markup, "sid", 0, 0, Buttons{}))
}

func TestNavRowEdges(t *testing.T) {
	markup := &tele.ReplyMarkup{}

	first := navRow(markup, "sid", 0, 3, Buttons{})
	require.Equal(t, []string{"⏹️", "▶️", "⏩"}, rowLabels(first))

	middle := navRow(markup, "sid", 1, 3, Buttons{})
	require.Equal(t, []string{"⏪", "◀️", "⏹️", "▶️", "⏩"}, rowLabels(middle))

	last := navRow(markup, "sid", 2, 3, Buttons{})
	require.Equal(t, []string{"⏪", "◀️", "⏹️"}, rowLabels(last))
}

func TestNavRowPrevNextOnly(t *testing.T) {
	markup := &tele.ReplyMarkup{}
	row := navRow(markup, "sid", 1, 3, PrevNextOnly())
	require.Equal(t, []string{"◀️", "▶️"}, rowLabels(row))
}

func TestNavRowLabelOverride(t *testing.T) {
	markup := &tele.ReplyMarkup{}
	b := Buttons{
		Labels: map[Action]string{ActionNext: "More"},
		Omit:   []Action{ActionFirst, ActionLast, ActionStop},
	}
	row := navRow(markup, "sid", 0, 2, b)
	require.Equal(t, []string{"More"}, rowLabels(row))
	require.Equal(t, CallbackUnique, row[0].Unique)
	require.Equal(t, "sid|next", row[0].Data)
}

func TestActionTarget(t *testing.T) {
	cases := []struct {
		action Action
		page   int
		want   int
	}{
		{ActionFirst, 3, 0},
		{ActionPrev, 3, 2},
		{ActionNext, 3, 4},
		{ActionLast, 3, 9},
		{Action("bogus"), 3, 3},
	}
	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			require.Equal(t, tc.want, tc.action.target(tc.page, 10))
		})
	}
}

func TestClamp(t *testing.T) {
	for _, tc := range []struct{ i, n, want int }{
		{0, 0, 0},
		{5, 0, 0},
		{-1, 3, 0},
		{3, 3, 2},
		{1, 3, 1},
	} {
		t.Run(fmt.Sprintf("%d_%d", tc.i, tc.n), func(t *testing.T) {
			require.Equal(t, tc.want, clamp(tc.i, tc.n))
		})
	}
}
