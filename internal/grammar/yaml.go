package grammar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pack is the on-disk shape of a YAML grammar pack:
//
//	grammars:
//	  - language: nim
//	    line: "#"
//	    block_start: "#["
//	    block_end: "]#"
//	    nesting: true
//	    extensions: [".nim"]
type Pack struct {
	Grammars []Grammar `yaml:"grammars"`
}

// ParseYAML decodes and validates a grammar pack.
func ParseYAML(data []byte) ([]Grammar, error) {
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("decoding grammar pack: %w", err)
	}
	for i, g := range pack.Grammars {
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("grammar %d: %w", i, err)
		}
	}
	return pack.Grammars, nil
}

// LoadYAMLFile reads a grammar pack from path.
func LoadYAMLFile(path string) ([]Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar pack %s: %w", path, err)
	}
	gs, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return gs, nil
}

// MarshalYAML encodes grammars as a pack.
func MarshalYAML(gs []Grammar) ([]byte, error) {
	return yaml.Marshal(Pack{Grammars: gs})
}
