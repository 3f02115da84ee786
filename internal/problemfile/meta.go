package problemfile

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/adrg/frontmatter"
)

// Meta holds the settings read from a problem file front matter.
type Meta struct {
	DisplayName string         `yaml:"display_name" json:"display_name,omitempty"`
	URLName     string         `yaml:"url_name" json:"url_name,omitempty"`
	MaxAttempts *int           `yaml:"max_attempts" json:"max_attempts,omitempty"`
	Weight      *float64       `yaml:"weight" json:"weight,omitempty"`
	ShowAnswer  string         `yaml:"showanswer" json:"showanswer,omitempty"`
	Tags        []string       `yaml:"tags" json:"tags,omitempty"`
	Custom      map[string]any `yaml:",inline" json:"custom,omitempty"`
}

// Metadata flattens the settings into the map stored with a problem.
func (m Meta) Metadata() map[string]any {
	out := maps.Clone(m.Custom)
	if out == nil {
		out = map[string]any{}
	}
	if m.MaxAttempts != nil {
		out["max_attempts"] = *m.MaxAttempts
	}
	if m.Weight != nil {
		out["weight"] = *m.Weight
	}
	if m.ShowAnswer != "" {
		out["showanswer"] = m.ShowAnswer
	}
	if len(m.Tags) > 0 {
		out["tags"] = append([]string(nil), m.Tags...)
	}
	return out
}

// ParseFrontMatter splits source into its settings, the raw front matter
// values and the markdown body. Files without front matter yield an empty
// Meta and the whole source as body.
func ParseFrontMatter(source []byte) (Meta, map[string]any, []byte, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	raw := map[string]any{}
	if _, err := frontmatter.Parse(bytes.NewReader(source), &raw); err != nil {
		return Meta{}, nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, raw, body, nil
}
