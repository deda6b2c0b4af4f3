// Package commands defines the command metadata the registry stores and the
// help menu renders.
package commands

import (
	"sort"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Param describes a single command parameter for usage rendering.
type Param struct {
	Name     string
	Required bool
	Default  string
	Choices  []string
	Variadic bool
}

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Help        string
	Category    string
	Params      []Param
	Aliases     []string
	AdminOnly   bool
	Hidden      bool
}

// Brief returns the one-line summary for list views: the description, or the
// first line of Help, or fallback when both are empty.
func (c Command) Brief(fallback string) string {
	if c.Description != "" {
		return c.Description
	}
	if c.Help != "" {
		if idx := strings.IndexByte(c.Help, '\n'); idx >= 0 {
			return strings.TrimSpace(c.Help[:idx])
		}
		return strings.TrimSpace(c.Help)
	}
	return fallback
}

// LongHelp returns the full help text, falling back to the description and
// then to fallback.
func (c Command) LongHelp(fallback string) string {
	if c.Help != "" {
		return c.Help
	}
	if c.Description != "" {
		return c.Description
	}
	return fallback
}

// VisibleTo reports whether the command should be shown to the caller.
func (c Command) VisibleTo(isAdmin bool) bool {
	if c.Hidden {
		return false
	}
	if c.AdminOnly && !isAdmin {
		return false
	}
	return true
}

// SortNames sorts command names in place, ignoring the leading slash.
func SortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return strings.TrimPrefix(names[i], "/") < strings.TrimPrefix(names[j], "/")
	})
}
