// Package format contains text helpers for Telegram message rendering.
package format

import "strings"

const (
	mdV1Specials = "_*`["
	mdV2Specials = "_*[]()~`>#+-=|{}.!"
)

// EscapeV2 escapes every MarkdownV2 special character in text.
func EscapeV2(text string) string {
	return escape(text, mdV2Specials)
}

// EscapeV1 escapes legacy Markdown special characters in text.
func EscapeV1(text string) string {
	return escape(text, mdV1Specials)
}

func escape(text, specials string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, r := range text {
		if r < 128 && strings.ContainsRune(specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Bold wraps already-escaped text in MarkdownV2 bold markers.
func Bold(text string) string {
	return "*" + text + "*"
}

// Italic wraps already-escaped text in MarkdownV2 italic markers.
func Italic(text string) string {
	return "_" + text + "_"
}

// Code renders text as inline code, escaping backticks and backslashes
// inside the span.
func Code(text string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`")
	return "`" + r.Replace(text) + "`"
}

// Pre renders text as a code block.
func Pre(text string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`")
	return "```\n" + r.Replace(text) + "\n```"
}
