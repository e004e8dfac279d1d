package feed

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/dustin/go-humanize"
)

// AttrGUID links a rendered card back to its feed entry.
const AttrGUID = "data-guid"

// RenderCards lays entries out as video cards so the classification cascade
// can run over a syndication feed.
func RenderCards(channel *Channel, entries []Entry) string {
	var buf bytes.Buffer

	lang := ""
	if channel != nil {
		lang = channel.Language
	}
	fmt.Fprintf(&buf, "<html lang=\"%s\"><body><div id=\"contents\">\n", html.EscapeString(lang))
	for _, e := range entries {
		writeCard(&buf, e)
	}
	buf.WriteString("</div></body></html>")

	return buf.String()
}

func writeCard(buf *bytes.Buffer, e Entry) {
	fmt.Fprintf(buf, "<ytd-rich-item-renderer %s=\"%s\">", AttrGUID, html.EscapeString(e.GUID))
	fmt.Fprintf(buf, "<a id=\"thumbnail\" href=\"%s\"></a>", html.EscapeString(e.Link))
	fmt.Fprintf(buf, "<a id=\"video-title-link\" href=\"%s\" title=\"%s\">%s</a>",
		html.EscapeString(e.Link), html.EscapeString(e.Title), html.EscapeString(e.Title))
	if e.Channel != "" {
		fmt.Fprintf(buf, "<ytd-channel-name><a href=\"%s\">%s</a></ytd-channel-name>",
			html.EscapeString(e.ChannelURL), html.EscapeString(e.Channel))
	}
	buf.WriteString("<div id=\"metadata-line\">")
	if e.Views >= 0 {
		fmt.Fprintf(buf, "<span class=\"inline-metadata-item\">%s views</span>", humanize.Comma(e.Views))
	}
	if !e.PublishedAt.IsZero() {
		fmt.Fprintf(buf, "<span class=\"inline-metadata-item\">%s</span>", humanize.Time(e.PublishedAt))
	}
	buf.WriteString("</div>")
	if e.Description != "" {
		fmt.Fprintf(buf, "<div id=\"description-text\">%s</div>", html.EscapeString(e.Description))
	}
	buf.WriteString("</ytd-rich-item-renderer>\n")
}

// Kept returns the entries whose cards are still visible, in feed order.
func (d *Document) Kept(entries []Entry) []Entry {
	hidden := make(map[string]bool)
	for _, n := range d.Candidates() {
		guid, ok := attr(n, AttrGUID)
		if ok && !Visible(n) {
			hidden[guid] = true
		}
	}

	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !hidden[e.GUID] {
			kept = append(kept, e)
		}
	}
	return kept
}

// HiddenGUIDs maps each hidden entry to its suppression reason.
func (d *Document) HiddenGUIDs() map[string]string {
	out := make(map[string]string)
	for _, n := range d.Candidates() {
		guid, ok := attr(n, AttrGUID)
		if !ok {
			continue
		}
		if reason, hidden := HiddenReason(n); hidden {
			out[strings.TrimSpace(guid)] = reason
		}
	}
	return out
}
