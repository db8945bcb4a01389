// Package species maps game species ids to national dex numbers, loaded from
// a YAML table. The table compiled into the binary covers the species the
// default setup uses; a file can replace it.
package species

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

//go:embed species.yaml
var defaultTable []byte

// Client answers species lookups
type Client interface {
	// NationalDexNumber returns 0 for unknown species
	NationalDexNumber(species nz.SpeciesID) uint16

	// Lookup returns the table entry of a species
	Lookup(species nz.SpeciesID) (Species, bool)

	// NationalDexCount bounds national dex numbers in this table
	NationalDexCount() int
}

// Species is one row of the table
type Species struct {
	ID       nz.SpeciesID `yaml:"id"`
	Name     string       `yaml:"name"`
	National uint16       `yaml:"national"`
}

// Table is the YAML document
type Table struct {
	Version          string    `yaml:"version"`
	NationalDexCount int       `yaml:"national_dex_count"`
	Species          []Species `yaml:"species"`
}

type client struct {
	version       string
	nationalCount int
	byID          map[nz.SpeciesID]Species
}

// Ensure client implements Client
var _ Client = (*client)(nil)

// NewDefault returns the compiled-in table
func NewDefault() (Client, error) {
	return Parse(defaultTable)
}

// Load reads a table from disk
func Load(path string) (Client, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species table: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML table
func Parse(raw []byte) (Client, error) {
	var table Table
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode species table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	byID := make(map[nz.SpeciesID]Species, len(table.Species))
	for _, s := range table.Species {
		byID[s.ID] = s
	}

	nationalCount := table.NationalDexCount
	if nationalCount == 0 {
		nationalCount = nz.DefaultNationalDexCount
	}

	return &client{
		version:       table.Version,
		nationalCount: nationalCount,
		byID:          byID,
	}, nil
}

// Validate checks the semantic constraints of a table
func (t *Table) Validate() error {
	var errs []error

	if t.NationalDexCount < 0 {
		errs = append(errs, fmt.Errorf("national_dex_count must not be negative"))
	}
	limit := t.NationalDexCount
	if limit == 0 {
		limit = nz.DefaultNationalDexCount
	}

	seen := make(map[nz.SpeciesID]bool, len(t.Species))
	for i, s := range t.Species {
		switch {
		case !s.ID.IsReal():
			errs = append(errs, fmt.Errorf("species[%d]: id %d is reserved", i, s.ID))
		case seen[s.ID]:
			errs = append(errs, fmt.Errorf("species[%d]: duplicate id %d", i, s.ID))
		}
		seen[s.ID] = true

		if s.National == 0 || int(s.National) >= limit {
			errs = append(errs, fmt.Errorf("species[%d]: national %d outside 1..%d", i, s.National, limit-1))
		}
	}

	return errors.Join(errs...)
}

func (c *client) NationalDexNumber(species nz.SpeciesID) uint16 {
	return c.byID[species].National
}

func (c *client) Lookup(species nz.SpeciesID) (Species, bool) {
	s, ok := c.byID[species]
	return s, ok
}

func (c *client) NationalDexCount() int {
	return c.nationalCount
}
