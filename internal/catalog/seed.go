package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadYAML parses a nested class → subject → year → path mapping. Document
// order is kept, so the resulting entries list subjects the way the file does.
func ReadYAML(r io.Reader) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var out []Entry
	err := eachPair(doc.Content[0], func(class string, subjects *yaml.Node) error {
		return eachPair(subjects, func(subject string, years *yaml.Node) error {
			return eachPair(years, func(year string, path *yaml.Node) error {
				if path.Kind != yaml.ScalarNode {
					return fmt.Errorf("catalog: line %d: path for %s/%s/%s must be a string", path.Line, class, subject, year)
				}
				e := Entry{Class: class, Subject: subject, Year: year, Path: path.Value}
				if err := e.Validate(); err != nil {
					return fmt.Errorf("line %d: %w", path.Line, err)
				}
				out = append(out, e)
				return nil
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadYAMLFile reads entries from a YAML seed file.
func LoadYAMLFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open seed file: %w", err)
	}
	defer f.Close()
	return ReadYAML(f)
}

func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("catalog: line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("catalog: line %d: keys must be strings", key.Line)
		}
		if err := fn(key.Value, value); err != nil {
			return err
		}
	}
	return nil
}
