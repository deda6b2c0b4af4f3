package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBrief(t *testing.T) {
	require.Equal(t, "desc", Command{Description: "desc", Help: "full help"}.Brief("none"))
	require.Equal(t, "first line", Command{Help: "first line\nsecond line"}.Brief("none"))
	require.Equal(t, "only line", Command{Help: "only line"}.Brief("none"))
	require.Equal(t, "none", Command{}.Brief("none"))
}

func TestLongHelp(t *testing.T) {
	require.Equal(t, "full help", Command{Description: "desc", Help: "full help"}.LongHelp("none"))
	require.Equal(t, "desc", Command{Description: "desc"}.LongHelp("none"))
	require.Equal(t, "none", Command{}.LongHelp("none"))
}

func TestVisibleTo(t *testing.T) {
	require.True(t, Command{}.VisibleTo(false))
	require.False(t, Command{Hidden: true}.VisibleTo(true))
	require.False(t, Command{AdminOnly: true}.VisibleTo(false))
	require.True(t, Command{AdminOnly: true}.VisibleTo(true))
}

func TestSortNamesIgnoresSlash(t *testing.T) {
	names := []string{"/zoo", "help", "/about"}
	SortNames(names)
	require.Equal(t, []string{"/about", "help", "/zoo"}, names)
}
