package filter

import "testing"

func TestParsePage(t *testing.T) {
	tests := []struct {
		url  string
		want Page
	}{
		{"https://www.youtube.com/", PageHome},
		{"https://www.youtube.com", PageHome},
		{"https://www.youtube.com/watch?v=abc", PageWatch},
		{"https://www.youtube.com/results?search_query=go", PageSearch},
		{"https://www.youtube.com/feed/subscriptions", PageSubscriptions},
		{"https://www.youtube.com/feed/library", PageLibrary},
		{"https://www.youtube.com/feed/history/", PageLibrary},
		{"https://www.youtube.com/playlist?list=WL", PageLibrary},
		{"https://www.youtube.com/playlist?list=PLabc", PageOther},
		{"https://www.youtube.com/@creator/videos", PageChannel},
		{"https://www.youtube.com/channel/UC123", PageChannel},
		{"https://www.youtube.com/feed/trending", PageOther},
		{"::not a url", PageOther},
	}

	for _, tt := range tests {
		if got := ParsePage(tt.url); got != tt.want {
			t.Errorf("ParsePage(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestBypassed(t *testing.T) {
	s := quiet(nil).Current()
	if !Bypassed(PageLibrary, s) || !Bypassed(PageSubscriptions, s) {
		t.Error("library and subscriptions must bypass content rules")
	}
	if Bypassed(PageChannel, s) {
		t.Error("channel pages filter unless disabled")
	}
	s.DisableOnChannelPages = true
	if !Bypassed(PageChannel, s) {
		t.Error("channel pages must bypass when disabled")
	}
}
