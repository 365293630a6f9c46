package catalog

import (
	"fmt"

	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

// Slots names the bound-field positions a kind reads, in order.
func Slots(kind models.WidgetKind) []string {
	if kind == models.KindKPICard {
		return []string{"value", "target"}
	}
	return []string{"value"}
}

// CheckBinding reports whether every field bound by w exists in fields and
// fits w's kind.
func CheckBinding(w models.Widget, fields []models.FieldDescriptor) error {
	slots := Slots(w.Kind)
	if len(w.Fields) > len(slots) {
		return errs.NewValidationError(fmt.Sprintf("%s binds at most %d field(s)", w.Kind, len(slots)))
	}

	idx := Index(fields)
	for _, path := range w.Fields {
		f, ok := idx[path]
		if !ok {
			return errs.NewValidationError(fmt.Sprintf("unknown field %q", path))
		}
		if !Accepts(w.Kind, f.ValueType) {
			return errs.NewValidationError(fmt.Sprintf("field %q (%s) cannot be bound by %s", path, f.ValueType, w.Kind))
		}
	}
	return nil
}
