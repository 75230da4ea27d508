package cardfile

import (
	"github.com/MrSnakeDoc/notary/internal/domain"
)

// Mapper converts card file entries to domain.Card values
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCards normalizes entries the same way a capture gesture does.
// Entries with empty text are skipped and counted.
func (m *Mapper) MapCards(file File) (cards []domain.Card, skipped int) {
	cards = make([]domain.Card, 0, len(file))
	for _, e := range file {
		title := e.SiteTitle
		if title == "" {
			title = e.Title
		}
		card, ok := domain.NewCard(e.Text, e.URL, title)
		if !ok {
			skipped++
			continue
		}
		cards = append(cards, card)
	}
	return cards, skipped
}
