package cardfile

// Entry is one card as written in a card file.
// Title is accepted as an alias of SiteTitle for hand-written files.
type Entry struct {
	Text      string `yaml:"text" json:"text"`
	URL       string `yaml:"url" json:"url"`
	SiteTitle string `yaml:"siteTitle,omitempty" json:"siteTitle,omitempty"`
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
}

// File is the top-level structure of a card file: a plain list of entries,
// the same shape as the persisted collection.
type File []Entry
