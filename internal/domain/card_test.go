package domain

import "testing"

func TestNewCard(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		url      string
		title    string
		wantOK   bool
		expected Card
	}{
		{
			name:     "trims text",
			text:     "  hello world \n",
			url:      "https://a.test/page",
			title:    "A Page",
			wantOK:   true,
			expected: Card{Text: "hello world", URL: "https://a.test/page", SiteTitle: "A Page"},
		},
		{
			name:     "empty title falls back to url",
			text:     "hello",
			url:      "https://a.test/page?q=1#frag",
			title:    "",
			wantOK:   true,
			expected: Card{Text: "hello", URL: "https://a.test/page?q=1#frag", SiteTitle: "https://a.test/page?q=1#frag"},
		},
		{
			name:   "empty text rejected",
			text:   "",
			url:    "https://a.test/page",
			title:  "A Page",
			wantOK: false,
		},
		{
			name:   "whitespace only rejected",
			text:   " \t\n ",
			url:    "https://a.test/page",
			title:  "A Page",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, ok := NewCard(tt.text, tt.url, tt.title)
			if ok != tt.wantOK {
				t.Fatalf("NewCard() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && card != tt.expected {
				t.Errorf("NewCard() = %+v, want %+v", card, tt.expected)
			}
		})
	}
}

func TestSameIdentity(t *testing.T) {
	base := Card{Text: "hello world", URL: "https://a.test/page", SiteTitle: "A Page"}

	tests := []struct {
		name  string
		other Card
		want  bool
	}{
		{name: "identical", other: base, want: true},
		{name: "different url", other: Card{Text: base.Text, URL: "https://a.test/page2", SiteTitle: base.SiteTitle}, want: false},
		{name: "different text", other: Card{Text: "hello", URL: base.URL, SiteTitle: base.SiteTitle}, want: false},
		{name: "different title", other: Card{Text: base.Text, URL: base.URL, SiteTitle: "Other"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.SameIdentity(tt.other); got != tt.want {
				t.Errorf("SameIdentity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeySeparatesFields(t *testing.T) {
	a := Card{Text: "ab", URL: "c", SiteTitle: "d"}
	b := Card{Text: "a", URL: "bc", SiteTitle: "d"}

	if a.Key() == b.Key() {
		t.Errorf("Key() collided for %+v and %+v", a, b)
	}
	if a.Key() != a.Key() {
		t.Error("Key() should be stable")
	}
	if len(a.Key()) != 16 {
		t.Errorf("Key() length = %d, want 16", len(a.Key()))
	}
}

func TestWithoutCardDropsAllDuplicates(t *testing.T) {
	target := Card{Text: "dup", URL: "https://a.test", SiteTitle: "A"}
	other := Card{Text: "keep", URL: "https://a.test", SiteTitle: "A"}

	cards := []Card{target, other, target}
	got := WithoutCard(cards, target)

	if len(got) != 1 {
		t.Fatalf("WithoutCard() length = %d, want 1", len(got))
	}
	if got[0] != other {
		t.Errorf("WithoutCard() kept %+v, want %+v", got[0], other)
	}
	if ContainsCard(got, target) {
		t.Error("ContainsCard() should be false after WithoutCard()")
	}
}
