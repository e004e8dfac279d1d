package feed

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is a mutable content tree with a cache of the items created for
// its candidate elements.
type Document struct {
	doc    *goquery.Document
	root   *html.Node
	items  map[*html.Node]*Item
	locale *Locale
}

// ParseDocument decodes r using the declared content type (or sniffed
// encoding) and parses it as HTML.
func ParseDocument(r io.Reader, contentType string) (*Document, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return NewDocument(doc), nil
}

func NewDocument(doc *goquery.Document) *Document {
	d := &Document{
		doc:   doc,
		items: make(map[*html.Node]*Item),
	}
	if len(doc.Nodes) > 0 {
		d.root = doc.Nodes[0]
	}
	lang, _ := doc.Find("html").First().Attr("lang")
	d.locale = LocaleFor(lang)
	return d
}

func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

func (d *Document) Locale() *Locale {
	return d.locale
}

// Item returns the cached item for a candidate element, creating it on
// first use.
func (d *Document) Item(n *html.Node) *Item {
	if it, ok := d.items[n]; ok {
		return it
	}
	it := newItem(n, d.locale)
	d.items[n] = it
	return it
}

// Candidates lists every candidate element of the tree in tree order.
func (d *Document) Candidates() []*html.Node {
	return d.CandidatesWithin(d.root)
}

// CandidatesWithin lists n itself when it is a candidate, followed by its
// candidate descendants in tree order. Elements nested inside another
// element of the same family are part of that element and are skipped.
func (d *Document) CandidatesWithin(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	if KindOf(n) != KindUnknown && !nestedCandidate(n) {
		out = append(out, n)
	}
	goquery.NewDocumentFromNode(n).Find(CandidateSelector).Each(func(_ int, s *goquery.Selection) {
		node := s.Nodes[0]
		if !nestedCandidate(node) {
			out = append(out, node)
		}
	})
	return out
}

func nestedCandidate(n *html.Node) bool {
	kind := KindOf(n)
	for p := n.Parent; p != nil; p = p.Parent {
		if pk := KindOf(p); pk != KindUnknown {
			return sameFamily(kind, pk)
		}
	}
	return false
}

// Attached reports whether n is still part of the tree.
func (d *Document) Attached(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// ClearMetadata drops the metadata caches of every cached item.
func (d *Document) ClearMetadata() {
	for _, it := range d.items {
		it.ClearMetadata()
	}
}

func (d *Document) forget(n *html.Node) {
	delete(d.items, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

// HTML renders the whole tree.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}

// Operation types accepted by Apply.
const (
	OpAppend = "append"
	OpRemove = "remove"
	OpAttr   = "attr"
)

// Op is one structural change to the tree. Target is a CSS selector; every
// matching element is changed.
type Op struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	HTML   string `json:"html,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Mutation is a change notification produced by Apply.
type Mutation struct {
	Target    *html.Node
	Added     []*html.Node
	Removed   []*html.Node
	Attribute string
}

// Apply performs ops in order and returns one mutation per changed element.
// Processing stops at the first invalid op.
func (d *Document) Apply(ops []Op) ([]Mutation, error) {
	var mutations []Mutation
	for i, op := range ops {
		if strings.TrimSpace(op.Target) == "" {
			return mutations, fmt.Errorf("op %d: target is required", i)
		}
		targets := d.doc.Find(op.Target)
		switch op.Type {
		case OpAppend:
			for _, t := range targets.Nodes {
				added, err := appendHTML(t, op.HTML)
				if err != nil {
					return mutations, fmt.Errorf("op %d: %w", i, err)
				}
				mutations = append(mutations, Mutation{Target: t, Added: added})
			}
		case OpRemove:
			for _, t := range targets.Nodes {
				parent := t.Parent
				if parent == nil {
					continue
				}
				parent.RemoveChild(t)
				d.forget(t)
				mutations = append(mutations, Mutation{Target: parent, Removed: []*html.Node{t}})
			}
		case OpAttr:
			if op.Name == "" {
				return mutations, fmt.Errorf("op %d: attribute name is required", i)
			}
			for _, t := range targets.Nodes {
				setAttr(t, op.Name, op.Value)
				mutations = append(mutations, Mutation{Target: t, Attribute: op.Name})
			}
		default:
			return mutations, fmt.Errorf("op %d: unknown type %q", i, op.Type)
		}
	}
	return mutations, nil
}

func appendHTML(target *html.Node, fragment string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), target)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	for _, n := range nodes {
		target.AppendChild(n)
	}
	return nodes, nil
}

// MissingMetadata lists the health-check locations an item does not expose.
func MissingMetadata(it *Item) []string {
	var missing []string
	for name, selector := range HealthChecks {
		if it.sel.Find(selector).Length() == 0 {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
