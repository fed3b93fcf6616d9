package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog is returned when catalog data fails validation
var ErrInvalidCatalog = errors.New("invalid requirement catalog")

// Default returns the catalog shipped with the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from disk, falling back to the embedded one when path is empty
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML. Unknown fields are rejected so that a typo in a
// requirement name cannot silently drop a requirement.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the structural invariants the evaluators rely on
func (c *Catalog) Validate() error {
	if c.GenEd.ClusterSize <= 0 {
		return fmt.Errorf("%w: gen-ed cluster size must be positive", ErrInvalidCatalog)
	}
	if len(c.GenEd.Sectors) == 0 {
		return fmt.Errorf("%w: no gen-ed sectors", ErrInvalidCatalog)
	}
	seenTheme := make(map[int]string)
	for _, s := range c.GenEd.Sectors {
		if len(s.Themes) == 0 {
			return fmt.Errorf("%w: sector %q has no themes", ErrInvalidCatalog, s.Name)
		}
		for _, t := range s.Themes {
			if other, dup := seenTheme[t]; dup {
				return fmt.Errorf("%w: theme %d is in both %q and %q", ErrInvalidCatalog, t, other, s.Name)
			}
			seenTheme[t] = s.Name
		}
	}

	if len(c.Programs) == 0 {
		return fmt.Errorf("%w: no programs", ErrInvalidCatalog)
	}
	seenDept := make(map[string]string)
	for i := range c.Programs {
		p := &c.Programs[i]
		if p.Name == "" || p.Kind == "" {
			return fmt.Errorf("%w: program %d needs a name and a kind", ErrInvalidCatalog, i)
		}
		if len(p.Departments) == 0 {
			return fmt.Errorf("%w: program %q maps no departments", ErrInvalidCatalog, p.Name)
		}
		for _, d := range p.Departments {
			key := strings.ToUpper(d)
			if other, dup := seenDept[key]; dup {
				return fmt.Errorf("%w: department %s mapped to %q and %q", ErrInvalidCatalog, d, other, p.Name)
			}
			seenDept[key] = p.Name
		}
		if len(p.Tracks) == 0 {
			return fmt.Errorf("%w: program %q has no tracks", ErrInvalidCatalog, p.Name)
		}
		if len(p.Capstone) == 0 {
			return fmt.Errorf("%w: program %q has no capstone", ErrInvalidCatalog, p.Name)
		}
		if err := validatePick(p.Name, "physicalEducation", p.PhysicalEducation); err != nil {
			return err
		}
		if err := validatePick(p.Name, "freeElective", p.FreeElective); err != nil {
			return err
		}
		for _, t := range p.Tracks {
			if t.ElectivesNeeded > len(t.Electives) {
				return fmt.Errorf("%w: track %q needs %d electives but lists %d",
					ErrInvalidCatalog, t.Name, t.ElectivesNeeded, len(t.Electives))
			}
		}
		for gi, g := range p.Core.PickOneOf {
			if len(g) == 0 {
				return fmt.Errorf("%w: program %q core group %d is empty", ErrInvalidCatalog, p.Name, gi)
			}
		}
	}
	return nil
}

func validatePick(program, field string, g PickGroup) error {
	if g.Pick < 0 || g.Pick > len(g.Courses) {
		return fmt.Errorf("%w: program %q %s picks %d of %d", ErrInvalidCatalog, program, field, g.Pick, len(g.Courses))
	}
	return nil
}
