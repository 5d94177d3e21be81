package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/osse101/CraftCalc_Go/internal/domain"
	"github.com/osse101/CraftCalc_Go/internal/validation"
)

// Sentinel errors for catalog loading
var (
	ErrInvalidConfig = fmt.Errorf("%w: invalid configuration", domain.ErrInvalidCatalog)
	ErrUnsupported   = errors.New("unsupported catalog format")
)

// RecipeDef is a single recipe as it appears in recipes.json
type RecipeDef struct {
	OutputQty   float64            `json:"output_qty"`
	Inputs      map[string]float64 `json:"inputs"`
	Description string             `json:"description,omitempty"`
	ImagePath   string             `json:"local_image_path,omitempty"`
}

// Config is the raw, unvalidated content of the catalog files
type Config struct {
	Recipes      map[string]RecipeDef
	RawMaterials []string
}

// hclFile mirrors the HCL catalog layout:
//
//	raw = ["Wood", "Stone"]
//	recipe "Plank" {
//	  output_qty = 1
//	  inputs     = { Wood = 2 }
//	}
type hclFile struct {
	Raw     []string    `hcl:"raw,optional"`
	Recipes []hclRecipe `hcl:"recipe,block"`
}

type hclRecipe struct {
	Name        string             `hcl:"name,label"`
	OutputQty   float64            `hcl:"output_qty,optional"`
	Inputs      map[string]float64 `hcl:"inputs,optional"`
	Description string             `hcl:"description,optional"`
	ImagePath   string             `hcl:"image,optional"`
}

// Loader handles reading, validating and building catalogs
type Loader interface {
	Load(recipesPath, rawPath string) (*Config, error)
	LoadHCL(path string) (*Config, error)
	Validate(cfg *Config) ([]string, error)
	Build(cfg *Config) (*Catalog, []string)
}

type loader struct {
	schemas validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &loader{schemas: validation.NewSchemaValidator()}
}

// Load reads recipes.json and raw_materials.json
func (l *loader) Load(recipesPath, rawPath string) (*Config, error) {
	recipeData, err := os.ReadFile(recipesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes file: %w", err)
	}

	var recipes map[string]RecipeDef
	if err := json.Unmarshal(recipeData, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes file: %w", err)
	}
	if err := l.schemas.ValidateBytes(recipeData, validation.RecipesSchema); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, recipesPath, err)
	}

	rawData, err := os.ReadFile(rawPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw materials file: %w", err)
	}

	var raw []string
	if err := json.Unmarshal(rawData, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse raw materials file: %w", err)
	}
	if err := l.schemas.ValidateBytes(rawData, validation.RawMaterialsSchema); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, rawPath, err)
	}

	return &Config{Recipes: recipes, RawMaterials: raw}, nil
}

// LoadHCL reads a single HCL catalog holding both recipes and raw materials
func (l *loader) LoadHCL(path string) (*Config, error) {
	if filepath.Ext(path) != ".hcl" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f hclFile
	if err := hclsimple.Decode(path, src, nil, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	cfg := &Config{
		Recipes:      make(map[string]RecipeDef, len(f.Recipes)),
		RawMaterials: f.Raw,
	}
	for _, r := range f.Recipes {
		if _, dup := cfg.Recipes[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate recipe '%s'", ErrInvalidConfig, r.Name)
		}
		cfg.Recipes[r.Name] = RecipeDef{
			OutputQty:   r.OutputQty,
			Inputs:      r.Inputs,
			Description: r.Description,
			ImagePath:   r.ImagePath,
		}
	}
	return cfg, nil
}

// Validate checks the configuration for hard errors and returns soft warnings
func (l *loader) Validate(cfg *Config) ([]string, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	raw := make(map[string]bool, len(cfg.RawMaterials))
	for i, name := range cfg.RawMaterials {
		if name == "" {
			return nil, fmt.Errorf("%w: raw material at index %d has empty name", ErrInvalidConfig, i)
		}
		raw[name] = true
	}

	var warnings []string
	for _, name := range sortedKeys(cfg.Recipes) {
		def := cfg.Recipes[name]
		if name == "" {
			return nil, fmt.Errorf("%w: recipe with empty name", ErrInvalidConfig)
		}
		if def.OutputQty < 0 || math.IsNaN(def.OutputQty) || math.IsInf(def.OutputQty, 0) {
			return nil, fmt.Errorf("%w: recipe '%s' has invalid output_qty %v", ErrInvalidConfig, name, def.OutputQty)
		}
		if raw[name] {
			warnings = append(warnings, fmt.Sprintf("'%s' is both a raw material and a recipe; treating it as raw", name))
		}

		for _, ing := range sortedKeys(def.Inputs) {
			qty := def.Inputs[ing]
			if ing == "" {
				return nil, fmt.Errorf("%w: recipe '%s' has an ingredient with empty name", ErrInvalidConfig, name)
			}
			if !(qty > 0) || math.IsInf(qty, 0) {
				return nil, fmt.Errorf("%w: recipe '%s' ingredient '%s' has non-positive quantity", ErrInvalidConfig, name, ing)
			}
			if _, ok := cfg.Recipes[ing]; !ok && !raw[ing] {
				warnings = append(warnings, fmt.Sprintf("recipe '%s' uses '%s' which is neither a recipe nor a raw material", name, ing))
			}
		}
	}

	return warnings, nil
}

// Build turns a validated configuration into a Catalog. Recipes that list
// themselves as an ingredient are dropped with a warning.
func (l *loader) Build(cfg *Config) (*Catalog, []string) {
	var warnings []string
	recipes := make(map[string]domain.Recipe, len(cfg.Recipes))

	for _, name := range sortedKeys(cfg.Recipes) {
		def := cfg.Recipes[name]
		if _, self := def.Inputs[name]; self {
			warnings = append(warnings, fmt.Sprintf("dropping self-referencing recipe '%s'", name))
			continue
		}
		recipes[name] = domain.Recipe{
			Name:        name,
			OutputQty:   def.OutputQty,
			Inputs:      def.Inputs,
			Description: def.Description,
			ImagePath:   def.ImagePath,
		}
	}

	return New(recipes, cfg.RawMaterials), warnings
}

// Open loads, validates and builds a catalog from the JSON file pair
func Open(recipesPath, rawPath string) (*Catalog, []string, error) {
	l := NewLoader()
	cfg, err := l.Load(recipesPath, rawPath)
	if err != nil {
		return nil, nil, err
	}
	return finish(l, cfg)
}

// OpenHCL loads, validates and builds a catalog from a single HCL file
func OpenHCL(path string) (*Catalog, []string, error) {
	l := NewLoader()
	cfg, err := l.LoadHCL(path)
	if err != nil {
		return nil, nil, err
	}
	return finish(l, cfg)
}

func finish(l Loader, cfg *Config) (*Catalog, []string, error) {
	warnings, err := l.Validate(cfg)
	if err != nil {
		return nil, nil, err
	}
	cat, buildWarnings := l.Build(cfg)
	return cat, append(warnings, buildWarnings...), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
