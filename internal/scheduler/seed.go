package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/notary/internal/controller"
	"github.com/MrSnakeDoc/notary/internal/domain"
	"github.com/MrSnakeDoc/notary/internal/logger"
	"github.com/MrSnakeDoc/notary/internal/sources/cardfile"
)

// Capturer stores cards the way a capture gesture does.
type Capturer interface {
	Capture(ctx context.Context, text, url, title string) (controller.CaptureResult, error)
}

// ImportReport summarizes one import.
type ImportReport struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

// Seeder imports card files through the capture path, so already stored
// tuples are skipped like a repeated capture.
type Seeder struct {
	capturer Capturer
	mapper   *cardfile.Mapper
	logger   logger.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(capturer Capturer, log logger.Logger) *Seeder {
	return &Seeder{
		capturer: capturer,
		mapper:   cardfile.NewMapper(),
		logger:   log,
	}
}

// SeedFile loads path and imports its cards.
func (s *Seeder) SeedFile(ctx context.Context, path string) (ImportReport, error) {
	s.logger.Info("seeding cards from file", logger.String("file", path))

	file, err := cardfile.NewLoader(path).Load()
	if err != nil {
		return ImportReport{}, err
	}
	cards, skipped := s.mapper.MapCards(file)

	report, err := s.Import(ctx, cards)
	report.Skipped += skipped
	if err != nil {
		return report, err
	}

	s.logger.Info("seeded cards from file",
		logger.String("file", path),
		logger.Int("imported", report.Imported),
		logger.Int("duplicates", report.Duplicates),
		logger.Int("skipped", report.Skipped))
	return report, nil
}

// Import captures cards in order and stops at the first store failure.
func (s *Seeder) Import(ctx context.Context, cards []domain.Card) (ImportReport, error) {
	var report ImportReport
	for _, c := range cards {
		res, err := s.capturer.Capture(ctx, c.Text, c.URL, c.SiteTitle)
		if err != nil {
			return report, fmt.Errorf("failed to import card %s: %w", c.Key(), err)
		}
		switch {
		case res.Created:
			report.Imported++
		case res.Reason == controller.ReasonDuplicate:
			report.Duplicates++
		default:
			report.Skipped++
		}
	}
	return report, nil
}
