package feed

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// State tracks whether a memoised metadata field has been looked at.
type State uint8

const (
	Unresolved State = iota
	Empty
	Resolved
)

// Field memoises a single extracted value. Empty is cached like a value so
// an absent fact is not searched for again until the caches are cleared.
type Field[T any] struct {
	state State
	value T
}

func (f *Field[T]) State() State {
	return f.state
}

// Value returns the cached value and whether it is Resolved.
func (f *Field[T]) Value() (T, bool) {
	return f.value, f.state == Resolved
}

func (f *Field[T]) resolve(compute func() (T, bool)) (T, bool) {
	if f.state == Unresolved {
		v, ok := compute()
		if ok {
			f.value, f.state = v, Resolved
		} else {
			var zero T
			f.value, f.state = zero, Empty
		}
	}
	return f.Value()
}

func (f *Field[T]) reset() {
	var zero T
	f.value, f.state = zero, Unresolved
}

// Metadata is the per-item cache of extracted facts.
type Metadata struct {
	Text         Field[string]
	Title        Field[string]
	Channel      Field[string]
	SectionTitle Field[string]
	Views        Field[int64]
	Viewers      Field[int64]
	Elapsed      Field[int64] // minutes since publish
	Duration     Field[int64] // seconds
	Shorts       Field[bool]
	Members      Field[bool]
	Playlist     Field[bool]
	UserPlaylist Field[bool]

	fragments Field[[]string]
	labels    Field[[]string]
}

func (m *Metadata) reset() {
	m.Text.reset()
	m.Title.reset()
	m.Channel.reset()
	m.SectionTitle.reset()
	m.Views.reset()
	m.Viewers.reset()
	m.Elapsed.reset()
	m.Duration.reset()
	m.Shorts.reset()
	m.Members.reset()
	m.Playlist.reset()
	m.UserPlaylist.reset()
	m.fragments.reset()
	m.labels.reset()
}

// Item is a candidate element of the content tree together with its
// metadata cache.
type Item struct {
	node   *html.Node
	sel    *goquery.Selection
	kind   Kind
	locale *Locale
	meta   Metadata
}

func newItem(n *html.Node, locale *Locale) *Item {
	return &Item{
		node:   n,
		sel:    goquery.NewDocumentFromNode(n).Selection,
		kind:   KindOf(n),
		locale: locale,
	}
}

func (it *Item) Node() *html.Node {
	return it.node
}

func (it *Item) Kind() Kind {
	return it.kind
}

func (it *Item) Selection() *goquery.Selection {
	return it.sel
}

func (it *Item) Metadata() *Metadata {
	return &it.meta
}

// ClearMetadata drops every cached fact so the next read re-extracts it.
func (it *Item) ClearMetadata() {
	it.meta.reset()
}

// ForceHidden reports whether the platform itself has hidden the element.
func (it *Item) ForceHidden() bool {
	return it.sel.Is(forceHiddenSelector)
}
