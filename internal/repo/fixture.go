package repo

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Stores []fixtureStore `yaml:"stores"`
}

type fixtureStore struct {
	ID        string           `yaml:"id"`
	StoreName string           `yaml:"storeName"`
	Products  []map[string]any `yaml:"products"`
}

// LoadFixture reads a YAML document tree into a new InMemoryCatalog. Product
// entries use the same field names as the Firestore documents plus an "id".
func LoadFixture(r io.Reader) (*InMemoryCatalog, error) {
	var f fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	c := NewInMemoryCatalog()
	for _, s := range f.Stores {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: store without id", ErrInvalidDocument)
		}
		c.AddStore(s.ID, s.StoreName)
		for i, doc := range s.Products {
			id, _ := doc["id"].(string)
			if id == "" {
				id = fmt.Sprintf("%s-%d", s.ID, i+1)
			}
			p, err := productFromData(id, doc)
			if err != nil {
				return nil, fmt.Errorf("store %s product %s: %w", s.ID, id, err)
			}
			if err := c.AddProduct(s.ID, p); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// LoadFixtureFile is LoadFixture for a file path.
func LoadFixtureFile(path string) (*InMemoryCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return LoadFixture(f)
}
