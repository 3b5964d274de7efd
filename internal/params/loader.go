package params

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed fixture file: the parameter sets of one suite and the
// method catalog they are expanded against.
type Document struct {
	Path    string
	Suite   string
	Catalog string
	Sets    []ParameterSet
}

// LoadFile reads and parses a fixture file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading fixture %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes fixture YAML. Field order inside each set is kept as written,
// which is why the document is walked as yaml.Node rather than decoded into
// maps.
func Parse(path string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("parse fixture %s: empty document", path)
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse fixture %s: line %d: expected a mapping", path, top.Line)
	}

	if err := checkDuplicateKeys(top); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	doc := &Document{Path: path}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "suite":
			if err := value.Decode(&doc.Suite); err != nil {
				return nil, fmt.Errorf("parse fixture %s: suite: %w", path, err)
			}
		case "catalog":
			if err := value.Decode(&doc.Catalog); err != nil {
				return nil, fmt.Errorf("parse fixture %s: catalog: %w", path, err)
			}
		case "sets":
			sets, err := decodeSets(value)
			if err != nil {
				return nil, fmt.Errorf("parse fixture %s: %w", path, err)
			}
			doc.Sets = sets
		default:
			return nil, fmt.Errorf("parse fixture %s: line %d: unknown key %q", path, key.Line, key.Value)
		}
	}

	if doc.Suite == "" {
		doc.Suite = suiteNameFromPath(path)
	}
	if doc.Catalog == "" {
		return nil, fmt.Errorf("parse fixture %s: catalog is required", path)
	}
	return doc, nil
}

func decodeSets(node *yaml.Node) ([]ParameterSet, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: sets must be a sequence", node.Line)
	}
	sets := make([]ParameterSet, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: set %d must be a mapping", item.Line, i)
		}
		if err := checkDuplicateKeys(item); err != nil {
			return nil, fmt.Errorf("set %d: %w", i, err)
		}
		fields := make([]Field, 0, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			v, err := decodeValue(item.Content[j+1])
			if err != nil {
				return nil, fmt.Errorf("line %d: set %d field %q: %w", item.Content[j].Line, i, item.Content[j].Value, err)
			}
			fields = append(fields, F(item.Content[j].Value, v))
		}
		sets = append(sets, New(fields...).At(i))
	}
	return sets, nil
}

// checkDuplicateKeys rejects a mapping that repeats a key. Walking
// yaml.Node bypasses the decoder's own duplicate check.
func checkDuplicateKeys(mapping *yaml.Node) error {
	seen := make(map[string]int, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		if first, ok := seen[key.Value]; ok {
			return fmt.Errorf("line %d: duplicate key %q (first defined on line %d)", key.Line, key.Value, first)
		}
		seen[key.Value] = key.Line
	}
	return nil
}

// decodeValue maps a YAML value to the Go shapes the typed accessors expect.
// A sequence of strings becomes []string; any other sequence stays []any.
func decodeValue(node *yaml.Node) (any, error) {
	if node.Kind != yaml.SequenceNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}

	items := make([]any, 0, len(node.Content))
	allStrings := true
	for _, child := range node.Content {
		v, err := decodeValue(child)
		if err != nil {
			return nil, err
		}
		if _, ok := v.(string); !ok {
			allStrings = false
		}
		items = append(items, v)
	}
	if !allStrings {
		return items, nil
	}
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.(string)
	}
	return out, nil
}

func suiteNameFromPath(path string) string {
	name := filepath.Base(path)
	for _, ext := range []string{".cases.yaml", ".cases.yml", ".yaml", ".yml"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
