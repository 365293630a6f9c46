package layout

import (
	_ "embed"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

//go:embed default.toml
var defaultPreset []byte

// Preset is a named widget layout stored as TOML.
type Preset struct {
	Name    string          `toml:"name"`
	Widgets []models.Widget `toml:"widgets"`
}

// Default returns the layout new dashboards start from.
func Default() Collection {
	p, err := ParsePreset(defaultPreset)
	if err != nil {
		panic(fmt.Sprintf("layout: embedded default preset is invalid: %v", err))
	}
	c, err := p.Collection()
	if err != nil {
		panic(fmt.Sprintf("layout: embedded default preset is invalid: %v", err))
	}
	return c
}

// LoadPreset reads and validates a preset file.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("reading preset %s: %w", path, err)
	}
	p, err := ParsePreset(data)
	if err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// ParsePreset decodes a preset and validates every widget in it.
func ParsePreset(data []byte) (Preset, error) {
	var p Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parsing preset: %w", err)
	}
	for i, w := range p.Widgets {
		if err := Validate(w); err != nil {
			return Preset{}, fmt.Errorf("widget %d (%s): %w", i, w.ID, err)
		}
	}
	return p, nil
}

// Collection converts the preset into a collection, rejecting duplicate ids.
func (p Preset) Collection() (Collection, error) {
	return FromWidgets(p.Widgets)
}

// MarshalPreset encodes a collection as a preset document.
func MarshalPreset(name string, c Collection) ([]byte, error) {
	data, err := toml.Marshal(Preset{Name: name, Widgets: c.Widgets()})
	if err != nil {
		return nil, fmt.Errorf("encoding preset: %w", err)
	}
	return data, nil
}

// Validate checks the structural rules every stored widget must satisfy:
// a non-empty id, a known kind, sizes in range and a config variant that
// matches the kind. Field bindings are checked against a catalog elsewhere.
func Validate(w models.Widget) error {
	if w.ID == "" {
		return errs.NewValidationError("widget id is required")
	}
	if !w.Kind.Valid() {
		return errs.NewValidationError(fmt.Sprintf("unknown widget kind %q", w.Kind))
	}
	if w.Width < models.MinWidth || w.Width > models.MaxWidth {
		return errs.NewValidationError(fmt.Sprintf("width must be between %d and %d", models.MinWidth, models.MaxWidth))
	}
	if w.Height < models.MinHeight || w.Height > models.MaxHeight {
		return errs.NewValidationError(fmt.Sprintf("height must be between %d and %d", models.MinHeight, models.MaxHeight))
	}
	if w.Config != nil {
		variants := w.Config.Variants()
		if len(variants) > 1 {
			return errs.NewValidationError("config may set only one variant")
		}
		if len(variants) == 1 && variants[0] != models.VariantFor(w.Kind) {
			return errs.NewValidationError(fmt.Sprintf("config %q does not apply to %s", variants[0], w.Kind))
		}
	}
	return nil
}
