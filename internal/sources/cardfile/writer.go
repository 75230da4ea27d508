package cardfile

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/notary/internal/domain"
)

// Write exports cards to w in the given format, in order.
func Write(w io.Writer, cards []domain.Card, format Format) error {
	file := make(File, 0, len(cards))
	for _, c := range cards {
		file = append(file, Entry{Text: c.Text, URL: c.URL, SiteTitle: c.SiteTitle})
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("failed to write json cards: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("failed to write yaml cards: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown card file format %q", format)
	}
}
