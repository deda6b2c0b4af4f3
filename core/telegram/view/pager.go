// Package view implements interactive inline-keyboard views: a paginated
// message with navigation buttons, a session manager that routes the
// button callbacks, and a click iterator for ad-hoc button flows.
package view

import (
	"errors"
	"sync"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrEmptySource is returned when a view is started over no pages.
	ErrEmptySource = errors.New("view: empty data source")
	// ErrNotOwner is returned when someone other than the view owner
	// interacts with it.
	ErrNotOwner = errors.New("view: interaction from non-owner")
	// ErrIteratorDone is returned by Iterator.Next after stop or timeout.
	ErrIteratorDone = errors.New("view: iterator done")
)

// Page is one rendered page of a view.
type Page struct {
	Text           string
	ParseMode      string
	DisablePreview bool
	// Rows are extra inline keyboard rows placed above the navigation row.
	Rows [][]tele.Btn
}

// Paginator is the non-generic surface the session manager drives.
type Paginator interface {
	PageIndex() int
	PageCount() int
	SetPage(i int)
	Render() (Page, error)
	ClearCache()
}

// Pager paginates a pre-chunked source: every element of the source slice
// is the payload of one page.
type Pager[T any] struct {
	mu       sync.Mutex
	items    []T
	page     int
	useCache bool
	cache    map[int]Page
	format   func(p *Pager[T], item T) (Page, error)
}

// PagerOption customises a Pager.
type PagerOption[T any] func(*Pager[T])

// WithCache keeps rendered pages and reuses them on revisits. The cache is
// cleared when the source changes.
func WithCache[T any]() PagerOption[T] {
	return func(p *Pager[T]) { p.useCache = true }
}

// WithStartPage sets the initial page index (clamped on first render).
func WithStartPage[T any](i int) PagerOption[T] {
	return func(p *Pager[T]) { p.page = i }
}

// NewPager builds a pager over items with the given page formatter.
func NewPager[T any](items []T, format func(p *Pager[T], item T) (Page, error), opts ...PagerOption[T]) *Pager[T] {
	p := &Pager[T]{
		items:  items,
		format: format,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.page = clamp(p.page, len(p.items))
	return p
}

// PageIndex returns the current zero-based page index.
func (p *Pager[T]) PageIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// PageCount returns the number of pages.
func (p *Pager[T]) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// SetPage moves to page i, clamped into the valid range.
func (p *Pager[T]) SetPage(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = clamp(i, len(p.items))
}

// Item returns the payload of the current page.
func (p *Pager[T]) Item() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	var zero T
	if len(p.items) == 0 {
		return zero
	}
	return p.items[p.page]
}

// Render formats the current page, consulting the cache when enabled.
func (p *Pager[T]) Render() (Page, error) {
	p.mu.Lock()
	idx := p.page
	if len(p.items) == 0 {
		p.mu.Unlock()
		return Page{}, ErrEmptySource
	}
	if p.useCache {
		if cached, ok := p.cache[idx]; ok {
			p.mu.Unlock()
			return cached, nil
		}
	}
	item := p.items[idx]
	p.mu.Unlock()

	page, err := p.format(p, item)
	if err != nil {
		return Page{}, err
	}

	p.mu.Lock()
	if p.useCache {
		if p.cache == nil {
			p.cache = make(map[int]Page)
		}
		p.cache[idx] = page
	}
	p.mu.Unlock()
	return page, nil
}

// ClearCache drops all cached pages.
func (p *Pager[T]) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = nil
}

// SetItems swaps the data source, clears the cache, and clamps to page.
func (p *Pager[T]) SetItems(items []T, page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.cache = nil
	p.page = clamp(page, len(items))
}

func clamp(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
