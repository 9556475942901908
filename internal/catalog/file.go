package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileProduct struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	PriceCents int64  `yaml:"price_cents"`
	Image      string `yaml:"image,omitempty"`
}

type catalogFile struct {
	Products []fileProduct `yaml:"products"`
}

// LoadFile reads a YAML catalog. Entries are validated one by one and
// duplicate ids fail the whole load: a catalog is either well formed or
// rejected, never partially accepted.
func LoadFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	return buildCatalog(f.Products)
}

func buildCatalog(entries []fileProduct) ([]Product, error) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Product, 0, len(entries))

	for i, e := range entries {
		p, err := NewProduct(e.ID, e.Title, e.PriceCents, e.Image)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: %w: %s", i, ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}

	return out, nil
}
