package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// rawEntry is the on-the-wire shape of a setup entry.
type rawEntry struct {
	Shape []int    `json:"shape" yaml:"shape"`
	DType string   `json:"dtype" yaml:"dtype"`
	Fill  string   `json:"fill" yaml:"fill"`
	Value *float64 `json:"value" yaml:"value"`
}

func (r rawEntry) toEntry(key string) SetupEntry {
	fill := Fill(r.Fill)
	if fill == "" {
		fill = FillZeros
	}

	return SetupEntry{
		Key:   key,
		Kind:  classify(key),
		Shape: r.Shape,
		DType: r.DType,
		Fill:  fill,
		Value: r.Value,
	}
}

// UnmarshalJSON decodes a setup object preserving key order, which the
// default map decoding would lose.
func (s *Setup) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode setup: %w", err)
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode setup: want object, got %v", tok)
	}

	s.entries = nil

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode setup key: %w", err)
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode setup: non-string key %v", keyTok)
		}

		var raw rawEntry
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode setup entry %q: %w", key, err)
		}

		s.entries = append(s.entries, raw.toEntry(key))
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode setup: %w", err)
	}

	return nil
}

// UnmarshalYAML decodes a setup mapping preserving key order.
func (s *Setup) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("decode setup: want mapping, got %v", node.Kind)
	}

	s.entries = nil

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value

		var raw rawEntry
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return fmt.Errorf("decode setup entry %q: %w", key, err)
		}

		s.entries = append(s.entries, raw.toEntry(key))
	}

	return nil
}

// benchmarkWire mirrors Benchmark for decoding.
type benchmarkWire struct {
	Name       string `json:"name" yaml:"name"`
	Operation  string `json:"operation" yaml:"operation"`
	Setup      Setup  `json:"setup" yaml:"setup"`
	Warmup     int    `json:"warmup" yaml:"warmup"`
	Iterations int    `json:"iterations" yaml:"iterations"`
}

func (w benchmarkWire) toBenchmark() (Benchmark, error) {
	if w.Name == "" {
		return Benchmark{}, fmt.Errorf("spec missing name")
	}

	if w.Operation == "" {
		return Benchmark{}, fmt.Errorf("spec %q missing operation", w.Name)
	}

	if w.Warmup < 0 {
		return Benchmark{}, fmt.Errorf("spec %q: negative warmup", w.Name)
	}

	return Benchmark{
		Name:       w.Name,
		Operation:  w.Operation,
		Setup:      w.Setup,
		Warmup:     w.Warmup,
		Iterations: w.Iterations,
	}, nil
}

type batchWire struct {
	Specs  []benchmarkWire `json:"specs" yaml:"specs"`
	Config Config          `json:"config" yaml:"config"`
}

// DecodeBatch reads a benchmark batch document: either a bare spec
// sequence or an object carrying specs plus config.
func DecodeBatch(r io.Reader) (Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("read batch: %w", err)
	}

	return decodeJSONBatch(data)
}

// DecodeValidationBatch reads a validation batch document, always an
// object with a specs sequence.
func DecodeValidationBatch(r io.Reader) (Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("read batch: %w", err)
	}

	var wire batchWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Batch{}, fmt.Errorf("decode validation batch: %w", err)
	}

	if wire.Specs == nil {
		return Batch{}, fmt.Errorf("validation batch missing specs")
	}

	return wireToBatch(wire)
}

// LoadFile reads a benchmark batch from a JSON or YAML catalog file,
// chosen by extension.
func LoadFile(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Batch{}, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAMLBatch(data)
	default:
		return decodeJSONBatch(data)
	}
}

func decodeJSONBatch(data []byte) (Batch, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return Batch{}, fmt.Errorf("empty batch document")
	}

	var wire batchWire

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &wire.Specs); err != nil {
			return Batch{}, fmt.Errorf("decode spec sequence: %w", err)
		}
	} else {
		if err := json.Unmarshal(trimmed, &wire); err != nil {
			return Batch{}, fmt.Errorf("decode batch: %w", err)
		}
	}

	return wireToBatch(wire)
}

func decodeYAMLBatch(data []byte) (Batch, error) {
	var wire batchWire
	if err := yaml.Unmarshal(data, &wire); err != nil {
		// Catalogs may also be a bare sequence.
		if seqErr := yaml.Unmarshal(data, &wire.Specs); seqErr != nil {
			return Batch{}, fmt.Errorf("decode YAML batch: %w", err)
		}

		wire.Config = Config{}
	}

	return wireToBatch(wire)
}

func wireToBatch(wire batchWire) (Batch, error) {
	batch := Batch{
		Specs:  make([]Benchmark, 0, len(wire.Specs)),
		Config: wire.Config,
	}

	seen := make(map[string]bool, len(wire.Specs))

	for _, w := range wire.Specs {
		b, err := w.toBenchmark()
		if err != nil {
			return Batch{}, err
		}

		if seen[b.Name] {
			return Batch{}, fmt.Errorf("duplicate spec name %q", b.Name)
		}

		seen[b.Name] = true
		batch.Specs = append(batch.Specs, b)
	}

	return batch, nil
}
