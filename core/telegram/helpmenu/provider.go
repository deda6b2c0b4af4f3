package helpmenu

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/velrin/telekit/core/search"
	"github.com/velrin/telekit/core/telegram/args"
	"github.com/velrin/telekit/core/telegram/callbacks"
	"github.com/velrin/telekit/core/telegram/commands"
	"github.com/velrin/telekit/core/telegram/format"
	"github.com/velrin/telekit/core/telegram/view"
)

// Provider builds the individual help menu views. Implementations may wrap
// DefaultProvider and override single constructors.
type Provider interface {
	// Front paginates the category labels, one button per category.
	Front(m *Menu, owner int64, categories []string) view.Paginator
	// Category paginates one category's command listing with a home button.
	Category(m *Menu, owner int64, label string, names []string) view.Paginator
	// Command renders the detail page for one command.
	Command(m *Menu, name string, cmd commands.Command, subs []string) view.Page
	// Error renders the unknown-topic page with a close button.
	Error(m *Menu, owner int64, topic string) view.Page
}

// DefaultProvider renders MarkdownV2 pages via the menu's format hooks.
type DefaultProvider struct{}

func (DefaultProvider) Front(m *Menu, owner int64, categories []string) view.Paginator {
	pages := search.Chunk(categories, m.PerPage)
	return view.NewPager(pages, func(p *view.Pager[[]string], cats []string) (view.Page, error) {
		markup := &tele.ReplyMarkup{}
		rows := make([][]tele.Btn, 0, len(cats))
		for _, cat := range cats {
			btn := markup.Data(cat, categoryUnique,
				callbacks.JoinPayload(strconv.FormatInt(owner, 10), cat))
			rows = append(rows, []tele.Btn{btn})
		}
		return view.Page{
			Text:      m.frontText(p.PageIndex()+1, p.PageCount()),
			ParseMode: tele.ModeMarkdownV2,
			Rows:      rows,
		}, nil
	}, view.WithCache[[]string]())
}

func (DefaultProvider) Category(m *Menu, owner int64, label string, names []string) view.Paginator {
	pages := search.Chunk(names, m.PerPage)
	return view.NewPager(pages, func(p *view.Pager[[]string], chunk []string) (view.Page, error) {
		markup := &tele.ReplyMarkup{}
		home := markup.Data(m.HomeLabel, homeUnique, strconv.FormatInt(owner, 10))
		return view.Page{
			Text:      m.categoryText(label, chunk, p.PageIndex()+1, p.PageCount()),
			ParseMode: tele.ModeMarkdownV2,
			Rows:      [][]tele.Btn{{home}},
		}, nil
	}, view.WithCache[[]string]())
}

func (DefaultProvider) Command(m *Menu, name string, cmd commands.Command, subs []string) view.Page {
	return view.Page{
		Text:      m.commandText(name, cmd, subs),
		ParseMode: tele.ModeMarkdownV2,
	}
}

func (DefaultProvider) Error(m *Menu, owner int64, topic string) view.Page {
	markup := &tele.ReplyMarkup{}
	closeBtn := markup.Data(m.CloseLabel, closeUnique, strconv.FormatInt(owner, 10))
	return view.Page{
		Text:      m.errorText(topic),
		ParseMode: tele.ModeMarkdownV2,
		Rows:      [][]tele.Btn{{closeBtn}},
	}
}

func (m *Menu) frontText(page, pages int) string {
	if m.FormatFront != nil {
		return m.FormatFront(page, pages)
	}
	var b strings.Builder
	b.WriteString(format.Bold(format.EscapeV2("Help")))
	b.WriteString("\n")
	b.WriteString(format.EscapeV2("Pick a category below."))
	writePageCounter(&b, page, pages)
	return b.String()
}

func (m *Menu) categoryText(label string, names []string, page, pages int) string {
	if m.FormatCategoryPage != nil {
		return m.FormatCategoryPage(label, names, page, pages)
	}
	var b strings.Builder
	b.WriteString(format.Bold(format.EscapeV2(label)))
	b.WriteString("\n")
	for _, name := range names {
		_, cmd, ok := m.Registry.LookupCommand(name)
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(format.Code(usageLine(name, cmd)))
		b.WriteString("\n")
		b.WriteString(format.EscapeV2(cmd.Brief(m.NoDocs)))
		b.WriteString("\n")
	}
	writePageCounter(&b, page, pages)
	return b.String()
}

func (m *Menu) commandText(name string, cmd commands.Command, subs []string) string {
	if m.FormatCommand != nil {
		return m.FormatCommand(name, cmd, subs)
	}
	var b strings.Builder
	b.WriteString(format.Bold(format.EscapeV2(name)))
	b.WriteString("\n")
	b.WriteString(format.Code(usageLine(name, cmd)))
	b.WriteString("\n\n")
	b.WriteString(format.EscapeV2(cmd.LongHelp(m.NoDocs)))
	if len(cmd.Aliases) > 0 {
		b.WriteString("\n\n")
		b.WriteString(format.Italic(format.EscapeV2("Aliases: " + strings.Join(cmd.Aliases, ", "))))
	}
	if len(subs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(format.Bold(format.EscapeV2("Subcommands")))
		for _, sub := range subs {
			_, sc, ok := m.Registry.LookupCommand(sub)
			if !ok {
				continue
			}
			b.WriteString("\n")
			b.WriteString(format.Code(sub))
			b.WriteString(" ")
			b.WriteString(format.EscapeV2(sc.Brief(m.NoDocs)))
		}
	}
	return b.String()
}

func (m *Menu) errorText(topic string) string {
	if m.FormatError != nil {
		return m.FormatError(topic)
	}
	return format.EscapeV2(fmt.Sprintf("No command or category named %q.", topic))
}

func usageLine(name string, cmd commands.Command) string {
	return strings.TrimSpace(name + " " + args.Signature(cmd.Params))
}

func writePageCounter(b *strings.Builder, page, pages int) {
	if pages <= 1 {
		return
	}
	b.WriteString("\n")
	b.WriteString(format.Italic(format.EscapeV2(fmt.Sprintf("Page %d of %d", page, pages))))
}
