// Package catalog holds the preset tables the tool panels draw from: edit
// presets, the color palette, ad and photography styles, lifestyle scenarios,
// animation styles, and 3D mockup options. The tables ship embedded in the
// binary and are immutable after Load.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"product-studio/internal/domain"
)

//go:embed data.yaml
var rawData []byte

// EditPreset is a one-click AI edit with a fixed prompt.
type EditPreset struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Prompt      string `yaml:"prompt" json:"-"`
}

// Color is a palette entry for the color variation panel.
type Color struct {
	Name   string `yaml:"name" json:"name"`
	Hex    string `yaml:"hex" json:"hex"`
	Prompt string `yaml:"prompt" json:"-"`
}

// Style is a named prompt fragment used by the ad shot, photography, and
// animation panels.
type Style struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Prompt      string `yaml:"prompt" json:"-"`
}

// Scenario is one lifestyle setting within a product category.
type Scenario struct {
	Name   string `yaml:"name" json:"name"`
	Prompt string `yaml:"prompt" json:"-"`
}

// ProductCategory groups the lifestyle scenarios that suit one kind of
// product.
type ProductCategory struct {
	ID        string     `yaml:"id" json:"id"`
	Name      string     `yaml:"name" json:"name"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Option is a selectable 3D mockup parameter (model, angle, or lighting).
type Option struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Catalog is the full preset set. All slices preserve file order, which is
// the order panels present them in.
type Catalog struct {
	EditPresets           []EditPreset      `yaml:"edit_presets"`
	Colors                []Color           `yaml:"colors"`
	ColorSuffix           string            `yaml:"color_suffix"`
	PreserveDetailsSuffix string            `yaml:"preserve_details_suffix"`
	AdStyles              []Style           `yaml:"ad_styles"`
	AdSuffix              string            `yaml:"ad_suffix"`
	PhotoStyles           []Style           `yaml:"photography_styles"`
	LifestyleSuffix       string            `yaml:"lifestyle_suffix"`
	Categories            []ProductCategory `yaml:"product_categories"`
	AnimationCategories   []Style           `yaml:"animation_categories"`
	AnimationStyles       []Style           `yaml:"animation_styles"`
	AnimationSuffix       string            `yaml:"animation_suffix"`
	MockupModels          []Option          `yaml:"mockup_models"`
	MockupAngles          []Option          `yaml:"mockup_angles"`
	MockupLighting        []Option          `yaml:"mockup_lighting"`
}

// Load parses the embedded preset tables.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(rawData, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.EditPresets) == 0 || len(c.Colors) == 0 || len(c.PhotoStyles) == 0 ||
		len(c.Categories) == 0 || len(c.AnimationCategories) == 0 {
		return nil, fmt.Errorf("catalog is missing required tables")
	}
	return &c, nil
}

// EditPreset resolves a preset by ID.
func (c *Catalog) EditPreset(id string) (EditPreset, error) {
	for _, p := range c.EditPresets {
		if p.ID == id {
			return p, nil
		}
	}
	return EditPreset{}, fmt.Errorf("edit preset %q: %w", id, domain.ErrUnknownPreset)
}

// ColorPrompt returns the tuned prompt for a palette color. Colors outside
// the palette get a generic transformation prompt built from the given name,
// so custom picker values still work.
func (c *Catalog) ColorPrompt(hex, name string) string {
	hex = strings.ToLower(hex)
	for _, col := range c.Colors {
		if strings.ToLower(col.Hex) == hex {
			return col.Prompt
		}
	}
	if name == "" {
		name = hex
	}
	return fmt.Sprintf("Transform the product to %s color scheme, maintaining all original design features and proportions", name)
}

// ColorName returns the palette name for a hex value, or the hex itself for
// colors outside the palette.
func (c *Catalog) ColorName(hex string) string {
	lower := strings.ToLower(hex)
	for _, col := range c.Colors {
		if strings.ToLower(col.Hex) == lower {
			return col.Name
		}
	}
	return hex
}

// AdStyle resolves an advertisement style by ID.
func (c *Catalog) AdStyle(id string) (Style, error) {
	return findStyle(c.AdStyles, id, "ad style")
}

// PhotoStyle resolves a photography style by ID. An empty or unknown ID
// falls back to the first (photorealistic) entry, matching how the panel
// defaults.
func (c *Catalog) PhotoStyle(id string) Style {
	for _, s := range c.PhotoStyles {
		if s.ID == id {
			return s
		}
	}
	return c.PhotoStyles[0]
}

// Category resolves a product category by ID, defaulting to electronics for
// unknown products.
func (c *Catalog) Category(id string) ProductCategory {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat
		}
	}
	for _, cat := range c.Categories {
		if cat.ID == "electronics" {
			return cat
		}
	}
	return c.Categories[0]
}

// AnimationStyle resolves an animation style by ID.
func (c *Catalog) AnimationStyle(id string) (Style, error) {
	return findStyle(c.AnimationStyles, id, "animation style")
}

// AnimationCategory resolves an animation product category by ID, defaulting
// to the generic product showcase.
func (c *Catalog) AnimationCategory(id string) Style {
	for _, s := range c.AnimationCategories {
		if s.ID == id {
			return s
		}
	}
	return c.AnimationCategories[0]
}

// MockupModel resolves a 3D mockup device model by ID.
func (c *Catalog) MockupModel(id string) (Option, error) {
	return findOption(c.MockupModels, id, "mockup model")
}

// MockupAngle resolves a 3D mockup camera angle by ID.
func (c *Catalog) MockupAngle(id string) (Option, error) {
	return findOption(c.MockupAngles, id, "mockup angle")
}

// MockupLight resolves a 3D mockup lighting setup by ID.
func (c *Catalog) MockupLight(id string) (Option, error) {
	return findOption(c.MockupLighting, id, "mockup lighting")
}

func findStyle(styles []Style, id, what string) (Style, error) {
	for _, s := range styles {
		if s.ID == id {
			return s, nil
		}
	}
	return Style{}, fmt.Errorf("%s %q: %w", what, id, domain.ErrUnknownPreset)
}

func findOption(opts []Option, id, what string) (Option, error) {
	for _, o := range opts {
		if o.ID == id {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("%s %q: %w", what, id, domain.ErrUnknownPreset)
}
