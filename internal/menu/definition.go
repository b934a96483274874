package menu

import (
	"bytes"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// ElementKind discriminates the element variants a card can hold.
type ElementKind string

const (
	KindPanel  ElementKind = "panel"
	KindButton ElementKind = "button"
)

// ParseElementKind accepts the ui_type spelling used in menu definitions.
func ParseElementKind(raw string) (ElementKind, error) {
	switch ElementKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindPanel:
		return KindPanel, nil
	case KindButton:
		return KindButton, nil
	}
	return "", &UnknownElementTypeError{Type: raw}
}

func (k *ElementKind) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	kind, err := ParseElementKind(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*k = kind
	return nil
}

// ElementSpec declares one UI element of a menu entry.
type ElementSpec struct {
	Kind    ElementKind `yaml:"ui_type"`
	ID      string      `yaml:"id,omitempty"`
	Text    string      `yaml:"text,omitempty"`
	Handler string      `yaml:"handler,omitempty"`
	Title   string      `yaml:"title,omitempty"`
}

// MenuEntry declares a titled entry and the elements of its card.
type MenuEntry struct {
	Title    string        `yaml:"title"`
	Elements []ElementSpec `yaml:"elements"`
}

// ParseEntries decodes a YAML list of menu entries. Unknown keys are rejected.
func ParseEntries(data []byte) ([]MenuEntry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var entries []MenuEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode menu definition: %w", err)
	}
	return entries, nil
}
