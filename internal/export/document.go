// Package export builds the denormalized documents the conference website
// consumes: the speaker directory, the presentation catalog and the
// day-by-day schedule grid. Builders read one event aggregate and share the
// identifier and classification contracts, so their outputs cross-reference
// each other by speaker key.
package export

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Map is an insertion-ordered string-keyed map. The documents are keyed
// structures whose entry order is part of the contract (speakers sorted by
// name, keynotes in program order, schedule days in day order), so plain Go
// maps cannot represent them.
type Map struct {
	keys   []string
	values map[string]any
}

func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores a value under key. Overwriting an existing key replaces the
// value but keeps the key's original position, matching last-write-wins
// collision handling in the builders.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			return nil, err
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SpeakerEntry is one row of the speaker directory. GithubID and TwitterID
// stay null in the output when the person has no such account.
type SpeakerEntry struct {
	ID           string  `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	Bio          string  `yaml:"bio" json:"bio"`
	GithubID     *string `yaml:"github_id" json:"github_id"`
	TwitterID    *string `yaml:"twitter_id" json:"twitter_id"`
	GravatarHash string  `yaml:"gravatar_hash" json:"gravatar_hash"`
}

type SpeakerRef struct {
	ID string `yaml:"id" json:"id"`
}

// PresentationEntry is one row of the presentation catalog, keyed in the
// document by the primary speaker's identifier or a curated override.
type PresentationEntry struct {
	Title       string       `yaml:"title" json:"title"`
	Type        string       `yaml:"type" json:"type"`
	Language    string       `yaml:"language" json:"language"`
	Description string       `yaml:"description" json:"description"`
	Speakers    []SpeakerRef `yaml:"speakers" json:"speakers"`
}

// TimeBlock is one row of the schedule grid: a single start/end window
// within one day. Talks is set for keynote/talk blocks, Name for lightning
// talk blocks and breaks.
type TimeBlock struct {
	Type  string `yaml:"type" json:"type"`
	Begin string `yaml:"begin" json:"begin"`
	End   string `yaml:"end" json:"end"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Talks *Map   `yaml:"talks,omitempty" json:"talks,omitempty"`
}

type DaySchedule struct {
	Events []TimeBlock `yaml:"events" json:"events"`
}
