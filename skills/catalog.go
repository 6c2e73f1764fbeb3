package skills

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the on-disk layout of a skill catalog.
type CatalogFile struct {
	Skills []Skill `yaml:"skills"`
}

// Catalog indexes skills by id and by lower-cased name.
type Catalog struct {
	byID   map[int]Skill
	byName map[string]Skill
}

// NewCatalog builds a catalog from in-memory entries. Later duplicates win.
func NewCatalog(entries []Skill) *Catalog {
	c := &Catalog{
		byID:   make(map[int]Skill, len(entries)),
		byName: make(map[string]Skill, len(entries)),
	}
	for _, s := range entries {
		if s.ID == 0 {
			continue
		}
		c.byID[s.ID] = s
		if s.Name != "" {
			c.byName[strings.ToLower(s.Name)] = s
		}
	}
	return c
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skill catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML catalog document.
func Parse(b []byte) (*Catalog, error) {
	var f CatalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("unmarshal skill catalog: %w", err)
	}
	for i, s := range f.Skills {
		if s.ID <= 0 {
			return nil, fmt.Errorf("skill %d (%q): id must be positive", i, s.Name)
		}
	}
	return NewCatalog(f.Skills), nil
}

// Skill returns the entry for id. Unknown ids report false.
func (c *Catalog) Skill(id int) (Skill, bool) {
	if c == nil || id == 0 {
		return Skill{}, false
	}
	s, ok := c.byID[id]
	return s, ok
}

// ByName looks a skill up by its display name, case-insensitively.
func (c *Catalog) ByName(name string) (Skill, bool) {
	if c == nil {
		return Skill{}, false
	}
	s, ok := c.byName[strings.ToLower(name)]
	return s, ok
}

// Len returns the number of indexed skills.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}
