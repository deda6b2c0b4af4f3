package args

import (
	"strings"

	"github.com/velrin/telekit/core/telegram/commands"
)

// Signature renders the usage string for a parameter list:
// required parameters as <name>, optional as [name], defaulted as
// [name=default], choices joined "a"|"b", and variadic with a trailing "...".
func Signature(params []commands.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if s := paramSignature(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func paramSignature(p commands.Param) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ""
	}
	if len(p.Choices) > 0 {
		quoted := make([]string, len(p.Choices))
		for i, c := range p.Choices {
			quoted[i] = `"` + c + `"`
		}
		name = strings.Join(quoted, "|")
	}
	if p.Variadic {
		name += "..."
	}

	if p.Required {
		return "<" + name + ">"
	}
	if p.Default != "" {
		return "[" + name + "=" + p.Default + "]"
	}
	return "[" + name + "]"
}
