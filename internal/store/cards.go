package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/notary/internal/domain"
	"github.com/MrSnakeDoc/notary/internal/logger"
)

// SavedCardsKey is the storage key the whole collection lives under.
const SavedCardsKey = "savedCards"

// Repository is the card store contract the controller depends on.
type Repository interface {
	List(ctx context.Context) ([]domain.Card, error)
	Exists(ctx context.Context, candidate domain.Card) (bool, error)
	// Add appends without checking uniqueness; callers check Exists first.
	Add(ctx context.Context, candidate domain.Card) error
	// Remove drops every stored entry sharing target's identity.
	Remove(ctx context.Context, target domain.Card) error
	Clear(ctx context.Context) error
}

// CardStore persists the ordered card collection as one JSON array in a Slot.
// Every mutation rewrites the full array.
type CardStore struct {
	slot   Slot
	logger logger.Logger
}

// NewCardStore creates a card store on top of slot.
func NewCardStore(slot Slot, log logger.Logger) *CardStore {
	return &CardStore{
		slot:   slot,
		logger: log,
	}
}

// List reads the full collection. Absent or unparseable payloads yield an empty list.
func (s *CardStore) List(ctx context.Context) ([]domain.Card, error) {
	payload, err := s.slot.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return s.decode(payload), nil
}

// Exists reports whether a card with the same identity tuple is stored.
func (s *CardStore) Exists(ctx context.Context, candidate domain.Card) (bool, error) {
	cards, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return domain.ContainsCard(cards, candidate), nil
}

// Add appends candidate and persists the whole sequence.
func (s *CardStore) Add(ctx context.Context, candidate domain.Card) error {
	err := s.slot.Update(ctx, func(current string) (string, error) {
		cards := append(s.decode(current), candidate)
		return encode(cards)
	})
	if err != nil {
		return fmt.Errorf("failed to add card: %w", err)
	}
	return nil
}

// Remove persists the sequence filtered of all entries matching target.
func (s *CardStore) Remove(ctx context.Context, target domain.Card) error {
	err := s.slot.Update(ctx, func(current string) (string, error) {
		return encode(domain.WithoutCard(s.decode(current), target))
	})
	if err != nil {
		return fmt.Errorf("failed to remove card: %w", err)
	}
	return nil
}

// Clear deletes the persisted key.
func (s *CardStore) Clear(ctx context.Context) error {
	if err := s.slot.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear cards: %w", err)
	}
	return nil
}

// Replace overwrites the collection with cards, in order.
func (s *CardStore) Replace(ctx context.Context, cards []domain.Card) error {
	err := s.slot.Update(ctx, func(string) (string, error) {
		return encode(cards)
	})
	if err != nil {
		return fmt.Errorf("failed to replace cards: %w", err)
	}
	return nil
}

func (s *CardStore) decode(payload string) []domain.Card {
	if payload == "" {
		return []domain.Card{}
	}
	var cards []domain.Card
	if err := json.Unmarshal([]byte(payload), &cards); err != nil {
		s.logger.Warn("stored cards are unreadable, treating as empty",
			logger.String("backend", s.slot.Name()),
			logger.Error(err))
		return []domain.Card{}
	}
	if cards == nil {
		// "null" decodes without error
		return []domain.Card{}
	}
	return cards
}

func encode(cards []domain.Card) (string, error) {
	if cards == nil {
		cards = []domain.Card{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cards: %w", err)
	}
	return string(data), nil
}
