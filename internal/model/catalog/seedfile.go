package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadSeedFile reads a catalog seed from a YAML, TOML or JSON file.
// The format is chosen by file extension.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}

	var seed Seed
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &seed)
	case ".toml":
		err = toml.Unmarshal(data, &seed)
	case ".json":
		err = json.Unmarshal(data, &seed)
	default:
		return Seed{}, fmt.Errorf("unsupported seed file extension %q", ext)
	}
	if err != nil {
		return Seed{}, fmt.Errorf("decode seed file %s: %w", path, err)
	}

	if err := seed.Validate(); err != nil {
		return Seed{}, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return seed, nil
}

// Validate checks that character ids and season numbers are unique and
// that character ids are positive.
func (s Seed) Validate() error {
	ids := make(map[int]struct{}, len(s.Characters))
	for _, c := range s.Characters {
		if c.ID <= 0 {
			return fmt.Errorf("character %q has non-positive id %d", c.Name, c.ID)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("duplicate character id %d", c.ID)
		}
		ids[c.ID] = struct{}{}
	}

	numbers := make(map[int]struct{}, len(s.Seasons))
	for _, season := range s.Seasons {
		if _, dup := numbers[season.Number]; dup {
			return fmt.Errorf("duplicate season number %d", season.Number)
		}
		numbers[season.Number] = struct{}{}
	}
	return nil
}
