package feed

import (
	"strings"

	"golang.org/x/net/html"
)

// Marker attribute names written onto content-tree elements.
const (
	AttrProcessed   = "data-comb-processed"
	AttrHidden      = "data-comb-hidden"
	AttrTrigger     = "data-comb-trigger"
	AttrWhitelisted = "data-comb-whitelisted"
	AttrSavedStyle  = "data-comb-style"

	hiddenStyle = "display: none !important;"
)

// IsProcessed reports whether the element has been evaluated since the last
// navigation.
func IsProcessed(n *html.Node) bool {
	_, ok := attr(n, AttrProcessed)
	return ok
}

func MarkProcessed(n *html.Node) {
	setAttr(n, AttrProcessed, "1")
}

func ClearProcessed(n *html.Node) {
	removeAttr(n, AttrProcessed)
}

// HiddenReason returns the reason recorded when the element was hidden.
func HiddenReason(n *html.Node) (string, bool) {
	return attr(n, AttrHidden)
}

// IsHidden reports whether the element was hidden by the engine.
func IsHidden(n *html.Node) bool {
	_, ok := attr(n, AttrHidden)
	return ok
}

// Hide records the reason and trigger and forces the element invisible. The
// previous inline style is saved for Restore.
func Hide(n *html.Node, reason, trigger string) {
	if !IsHidden(n) {
		style, _ := attr(n, "style")
		setAttr(n, AttrSavedStyle, style)
		s := strings.TrimSpace(style)
		if s != "" && !strings.HasSuffix(s, ";") {
			s += ";"
		}
		if s != "" {
			s += " "
		}
		setAttr(n, "style", s+hiddenStyle)
	}
	setAttr(n, AttrHidden, reason)
	if trigger != "" {
		setAttr(n, AttrTrigger, trigger)
	} else {
		removeAttr(n, AttrTrigger)
	}
}

// MarkWhitelisted leaves a trace of an allow-list override.
func MarkWhitelisted(n *html.Node, reason string) {
	setAttr(n, AttrWhitelisted, reason)
}

// Restore undoes Hide and clears every marker.
func Restore(n *html.Node) {
	if IsHidden(n) {
		saved, _ := attr(n, AttrSavedStyle)
		if saved == "" {
			removeAttr(n, "style")
		} else {
			setAttr(n, "style", saved)
		}
	}
	for _, a := range []string{AttrProcessed, AttrHidden, AttrTrigger, AttrWhitelisted, AttrSavedStyle} {
		removeAttr(n, a)
	}
}

// Visible reports whether the element would render.
func Visible(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && IsHidden(n) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}
