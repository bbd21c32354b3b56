package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"gopkg.in/yaml.v3"
)

// RecordDecoder decodes a single record out of a parsed container.
type RecordDecoder func(r *core.Record) error

// Serializer defines how to read and write the store container in a specific format.
type Serializer interface {
	// Name identifies the format ("json", "yaml").
	Name() string
	// Split parses the container and returns one decoder per record, so a
	// malformed record can be skipped without losing the others.
	Split(data []byte) ([]RecordDecoder, error)
	// Encode renders the full container.
	Encode(records []core.Record) ([]byte, error)
}

// DefaultSerializers returns the supported formats keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor picks the serializer matching the extension of path.
// Unknown extensions fall back to JSON.
func SerializerFor(path string) Serializer {
	ext := strings.ToLower(filepath.Ext(path))
	if s, ok := DefaultSerializers()[ext]; ok {
		return s
	}
	return NewJSONSerializer()
}

// SerializerByName returns the serializer for a format name.
func SerializerByName(name string) (Serializer, error) {
	switch strings.ToLower(name) {
	case "json", "fs", "":
		return NewJSONSerializer(), nil
	case "yaml", "yml":
		return NewYAMLSerializer(), nil
	default:
		return nil, fmt.Errorf("unsupported store format: %s", name)
	}
}

// --- JSON Serializer ---

// JSONSerializer stores the collection as a JSON array indented by two spaces.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Name() string { return "json" }

func (s *JSONSerializer) Split(data []byte) ([]RecordDecoder, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	decoders := make([]RecordDecoder, 0, len(raw))
	for _, msg := range raw {
		decoders = append(decoders, func(r *core.Record) error {
			if err := json.Unmarshal(msg, r); err != nil {
				return fmt.Errorf("invalid json record: %w", err)
			}
			return nil
		})
	}
	return decoders, nil
}

func (s *JSONSerializer) Encode(records []core.Record) ([]byte, error) {
	if records == nil {
		records = []core.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer stores the collection as a YAML sequence.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Name() string { return "yaml" }

func (s *YAMLSerializer) Split(data []byte) ([]RecordDecoder, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	seq := root.Content[0]
	if seq.Kind == yaml.ScalarNode && seq.Tag == "!!null" {
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("invalid yaml: expected a sequence of notes at line %d", seq.Line)
	}

	decoders := make([]RecordDecoder, 0, len(seq.Content))
	for _, node := range seq.Content {
		decoders = append(decoders, func(r *core.Record) error {
			if err := node.Decode(r); err != nil {
				return fmt.Errorf("invalid yaml record at line %d: %w", node.Line, err)
			}
			return nil
		})
	}
	return decoders, nil
}

func (s *YAMLSerializer) Encode(records []core.Record) ([]byte, error) {
	if records == nil {
		records = []core.Record{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
