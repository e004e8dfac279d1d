package feed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, lang, body string) *Document {
	t.Helper()
	page := fmt.Sprintf(`<html lang="%s"><body><div id="contents">%s</div></body></html>`, lang, body)
	doc, err := ParseDocument(strings.NewReader(page), "text/html; charset=utf-8")
	require.NoError(t, err)
	return doc
}

func videoCard(title, channel string, fragments ...string) string {
	var b strings.Builder
	b.WriteString(`<ytd-rich-item-renderer>`)
	b.WriteString(`<a id="thumbnail" href="/watch?v=abc"></a>`)
	b.WriteString(`<ytd-thumbnail-overlay-time-status-renderer><span id="text">12:34</span></ytd-thumbnail-overlay-time-status-renderer>`)
	fmt.Fprintf(&b, `<a id="video-title-link" title="%s">%s</a>`, title, title)
	if channel != "" {
		fmt.Fprintf(&b, `<ytd-channel-name><a href="/@x">%s</a></ytd-channel-name>`, channel)
	}
	b.WriteString(`<div id="metadata-line">`)
	for _, f := range fragments {
		fmt.Fprintf(&b, `<span class="inline-metadata-item">%s</span>`, f)
	}
	b.WriteString(`</div></ytd-rich-item-renderer>`)
	return b.String()
}

func firstItem(t *testing.T, doc *Document) *Item {
	t.Helper()
	nodes := doc.Candidates()
	require.NotEmpty(t, nodes)
	return doc.Item(nodes[0])
}
