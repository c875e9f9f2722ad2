// Package inventory holds the registry of stored hazard dataset resources.
// Resources describe where a dataset family lives in the array store and
// which scenarios it carries; they are loaded once from a YAML file and
// treated as read-only afterwards.
package inventory

import (
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/terrarisk/hazard-cli/internal/hazard"
)

// Scenario is one scenario a resource is available for.
type Scenario struct {
	ID    string `yaml:"id"`
	Years []int  `yaml:"years,omitempty"`
}

// Resource is the metadata entry for one registered hazard dataset family.
// ArrayName is a template over {id}, {scenario} and {year}; joined with
// Path it yields the full array path inside the store.
type Resource struct {
	HazardType  string     `yaml:"hazard_type"`
	ID          string     `yaml:"id"`
	Path        string     `yaml:"path"`
	ArrayName   string     `yaml:"array_name"`
	Units       string     `yaml:"units,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Scenarios   []Scenario `yaml:"scenarios"`
}

// FormatArrayName fills the array-name template for a concrete request.
func (r Resource) FormatArrayName(id, scenario string, year int) string {
	return strings.NewReplacer(
		"{id}", id,
		"{scenario}", scenario,
		"{year}", strconv.Itoa(year),
	).Replace(r.ArrayName)
}

// Inventory is an ordered collection of resources indexed by
// (hazard type, id). Registration order is significant: consumers that
// need one resource per id take the first.
type Inventory struct {
	resources []Resource
}

type inventoryFile struct {
	Resources []Resource `yaml:"resources"`
}

// New builds an inventory from resources, validating hazard types.
func New(resources []Resource) (*Inventory, error) {
	for _, r := range resources {
		if _, err := hazard.Lookup(r.HazardType); err != nil {
			return nil, eris.Wrapf(err, "inventory: resource %q", r.ID)
		}
		if r.ID == "" {
			return nil, eris.Errorf("inventory: resource with hazard type %s has no id", r.HazardType)
		}
	}
	return &Inventory{resources: resources}, nil
}

// Load reads an inventory YAML file.
func Load(path string) (*Inventory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "inventory: read file")
	}
	var f inventoryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrap(err, "inventory: unmarshal")
	}
	return New(f.Resources)
}

// Resources returns all resources in registration order.
func (inv *Inventory) Resources() []Resource {
	return inv.resources
}

// ForType returns the resources registered for a hazard type, in
// registration order. Duplicate ids are preserved; first wins downstream.
func (inv *Inventory) ForType(t hazard.Type) []Resource {
	var out []Resource
	for _, r := range inv.resources {
		if r.HazardType == string(t) {
			out = append(out, r)
		}
	}
	return out
}

// Get returns the resources registered under (hazard type, id), in
// registration order.
func (inv *Inventory) Get(t hazard.Type, id string) []Resource {
	var out []Resource
	for _, r := range inv.ForType(t) {
		if r.ID == id {
			out = append(out, r)
		}
	}
	return out
}
