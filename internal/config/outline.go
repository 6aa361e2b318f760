package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Outline is the user-authored description of desired slide content. Both
// JSON and YAML documents are accepted; JSON parses through the YAML decoder.
type Outline struct {
	// Meta carries presentation metadata, passed through untouched.
	Meta Meta
	// Slides lists the desired slides in presentation order. A nil slice
	// means the document had no "slides" key at all.
	Slides []OutlineSlide
}

// Meta holds pass-through presentation metadata.
type Meta struct {
	// Title is the presentation title.
	Title string `yaml:"title,omitempty"`
	// Author is the presentation author.
	Author string `yaml:"author,omitempty"`
}

// OutlineSlide names a layout and maps placeholder keys to content.
type OutlineSlide struct {
	// Layout is the free-text layout name, matched case-insensitively.
	Layout string
	// Placeholders lists placeholder entries in document order. Entry order
	// determines emitted code order and the stacking of same-type multiples,
	// so it is kept as a slice rather than a map.
	Placeholders []PlaceholderContent
}

// PlaceholderContent is one placeholder key with its content value.
type PlaceholderContent struct {
	// Key is the raw placeholder key, e.g. "Body" or "Body[1]".
	Key string
	// Value is the content for the placeholder.
	Value Value
}

// UnmarshalYAML decodes the outline root, requiring the "slides" key.
func (o *Outline) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: outline root must be an object", node.Line)
	}
	hasSlides := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		switch key {
		case "meta":
			if err := val.Decode(&o.Meta); err != nil {
				return fmt.Errorf("decode outline meta: %w", err)
			}
		case "slides":
			hasSlides = true
			if err := val.Decode(&o.Slides); err != nil {
				return fmt.Errorf("decode outline slides: %w", err)
			}
		}
	}
	if !hasSlides {
		return fmt.Errorf("outline is missing required key %q", "slides")
	}
	if o.Slides == nil {
		o.Slides = []OutlineSlide{}
	}
	return nil
}

// UnmarshalYAML decodes a single slide, preserving placeholder entry order.
func (s *OutlineSlide) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: slide must be an object", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		switch key {
		case "layout":
			if err := val.Decode(&s.Layout); err != nil {
				return fmt.Errorf("decode slide layout: %w", err)
			}
		case "placeholders":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: slide placeholders must be an object", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				entry := PlaceholderContent{Key: val.Content[j].Value}
				if err := entry.Value.fromNode(val.Content[j+1]); err != nil {
					return fmt.Errorf("decode placeholder %q: %w", entry.Key, err)
				}
				s.Placeholders = append(s.Placeholders, entry)
			}
		}
	}
	return nil
}

// LoadOutline reads and parses an outline document from disk.
func LoadOutline(path string) (*Outline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read outline %q: %w", path, err)
	}
	outline, err := ParseOutline(raw)
	if err != nil {
		return nil, fmt.Errorf("parse outline %q: %w", path, err)
	}
	return outline, nil
}

// ParseOutline parses an outline document from raw JSON or YAML bytes.
func ParseOutline(raw []byte) (*Outline, error) {
	var outline Outline
	if err := yaml.Unmarshal(raw, &outline); err != nil {
		return nil, err
	}
	return &outline, nil
}
