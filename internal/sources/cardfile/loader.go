package cardfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of card files
type Loader struct {
	filePath string
}

// NewLoader creates a new card file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the card file. The format follows the file extension.
func (l *Loader) Load() (File, error) {
	f, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read card file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, FormatFromPath(l.filePath))
}

// Decode parses a card file from r.
func Decode(r io.Reader, format Format) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read card file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return File{}, nil
	}

	var file File
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse card file as %s: %w", format, err)
	}
	return file, nil
}
