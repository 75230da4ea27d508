package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Card is a captured snippet of page text together with where it came from.
//
// A Card has no surrogate key: two cards are the same card when their
// (Text, URL, SiteTitle) tuples are equal.
type Card struct {
	// Text is the captured selection, trimmed. Never empty once stored.
	Text string `json:"text" yaml:"text"`

	// URL is the full page URL at capture time.
	// Example: https://a.test/page?x=1#section
	URL string `json:"url" yaml:"url"`

	// SiteTitle is the document title at capture time, or URL when the
	// page had no title.
	SiteTitle string `json:"siteTitle" yaml:"siteTitle"`
}

// NewCard normalizes raw gesture inputs into a Card.
// It returns false when the trimmed text is empty; such a capture is
// rejected without an error.
func NewCard(text, url, title string) (Card, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Card{}, false
	}
	if title == "" {
		title = url
	}
	return Card{Text: text, URL: url, SiteTitle: title}, true
}

// SameIdentity reports whether both cards carry the same identity tuple.
func (c Card) SameIdentity(other Card) bool {
	return c.Text == other.Text && c.URL == other.URL && c.SiteTitle == other.SiteTitle
}

// Key returns a short stable digest of the identity tuple.
// It is meant for logs and lookups only, equality always goes through SameIdentity.
func (c Card) Key() string {
	h := sha256.New()
	// NUL separators keep ("ab","c") and ("a","bc") apart.
	h.Write([]byte(c.Text))
	h.Write([]byte{0})
	h.Write([]byte(c.URL))
	h.Write([]byte{0})
	h.Write([]byte(c.SiteTitle))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// ContainsCard reports whether cards holds an entry with the same identity as c.
func ContainsCard(cards []Card, c Card) bool {
	for _, existing := range cards {
		if existing.SameIdentity(c) {
			return true
		}
	}
	return false
}

// WithoutCard returns cards minus every entry sharing c's identity.
// Duplicates are all dropped, not just the first one.
func WithoutCard(cards []Card, c Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, existing := range cards {
		if existing.SameIdentity(c) {
			continue
		}
		out = append(out, existing)
	}
	return out
}
