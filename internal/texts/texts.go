package texts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Bundle is a key to localized-string lookup loaded from a JSON file.
type Bundle struct {
	lang    string
	entries map[string]string
}

// NewBundle builds a bundle from in-memory entries.
func NewBundle(lang string, entries map[string]string) *Bundle {
	return &Bundle{lang: lang, entries: entries}
}

// Load reads {dir}/{lang}.json into a Bundle. The file is a flat object of
// string values.
func Load(dir, lang string) (*Bundle, error) {
	raw, err := os.ReadFile(filepath.Join(dir, lang+".json"))
	if err != nil {
		return nil, fmt.Errorf("read texts for %q: %w", lang, err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse texts for %q: %w", lang, err)
	}

	return &Bundle{lang: lang, entries: entries}, nil
}

// Lang returns the bundle's language code.
func (b *Bundle) Lang() string {
	return b.lang
}

// Get returns the text for key. A missing key echoes the key back rather than
// failing mid-update.
func (b *Bundle) Get(key string) string {
	if text, ok := b.entries[key]; ok {
		return text
	}
	return key
}

// Render returns the text for key with every {name} placeholder replaced from
// vars.
func (b *Bundle) Render(key string, vars map[string]string) string {
	text := b.Get(key)
	for name, value := range vars {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}
