// Package catalog turns a business record into a flat list of addressable,
// typed fields and narrows that list for each widget kind.
package catalog

import (
	"math"
	"strings"

	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/record"
)

// LabelSeparator joins path segments in a field label.
const LabelSeparator = " > "

// aggregateKeys are key names treated as atomic chartable groups. The walk
// stops at them instead of expanding every nested scalar.
var aggregateKeys = map[string]bool{
	"byQuarter":    true,
	"byCategory":   true,
	"byProduct":    true,
	"demographics": true,
	"categories":   true,
	"kpis":         true,
	"targets":      true,
}

var (
	currencyKeywords   = []string{"price", "revenue", "sales", "cost", "expense"}
	percentageKeywords = []string{"rate", "percentage", "growth", "retention"}
)

// IsAggregateKey reports whether the walk stops at key.
func IsAggregateKey(key string) bool {
	return aggregateKeys[key]
}

// Build walks root depth-first and returns its field catalog. It never fails;
// a nil, empty or scalar root yields an empty catalog.
func Build(root any) []models.FieldDescriptor {
	fields := []models.FieldDescriptor{}
	if record.Classify(root) != record.NodeMapping {
		return fields
	}
	return walkMapping(fields, root.(*record.Map), "", "")
}

func walkMapping(out []models.FieldDescriptor, m *record.Map, path, label string) []models.FieldDescriptor {
	m.Range(func(key string, value any) bool {
		// keys that cannot round-trip through a dotted path are not addressable
		if key == "" || strings.Contains(key, record.PathSeparator) {
			return true
		}

		childPath := key
		childLabel := key
		if path != "" {
			childPath = path + record.PathSeparator + key
			childLabel = label + LabelSeparator + key
		}

		kind := record.Classify(value)
		if IsAggregateKey(key) && (kind == record.NodeMapping || kind == record.NodeSequence) {
			out = append(out, descriptor(childPath, childLabel, models.ValueObject, models.FormatNone))
			return true
		}
		out = walk(out, value, key, childPath, childLabel)
		return true
	})
	return out
}

func walk(out []models.FieldDescriptor, node any, key, path, label string) []models.FieldDescriptor {
	switch record.Classify(node) {
	case record.NodeNull:
		return out

	case record.NodeMapping:
		return walkMapping(out, node.(*record.Map), path, label)

	case record.NodeSequence:
		if len(node.([]any)) == 0 {
			return out
		}
		// scalar lists and row tables alike stay a single array field;
		// the table renderer discovers row shape from the first element
		return append(out, descriptor(path, label, models.ValueArray, models.FormatNone))

	default:
		if n, ok := record.AsNumber(node); ok {
			return append(out, descriptor(path, label, models.ValueNumber, InferFormat(key, n)))
		}
		if _, ok := node.(bool); ok {
			return append(out, descriptor(path, label, models.ValueBoolean, models.FormatNone))
		}
		return append(out, descriptor(path, label, models.ValueString, models.FormatNone))
	}
}

func descriptor(path, label string, vt models.ValueType, format models.Format) models.FieldDescriptor {
	return models.FieldDescriptor{
		ID:        path,
		Label:     label,
		Path:      path,
		ValueType: vt,
		Format:    format,
	}
}

// InferFormat picks a display format for a numeric field from its leaf key,
// falling back to the shape of the value.
func InferFormat(key string, value float64) models.Format {
	lower := strings.ToLower(key)
	switch {
	case containsAny(lower, currencyKeywords):
		return models.FormatCurrency
	case containsAny(lower, percentageKeywords):
		return models.FormatPercentage
	case value == math.Trunc(value) && !math.IsInf(value, 0):
		return models.FormatInteger
	default:
		return models.FormatDecimal
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Lookup returns the descriptor with the given id.
func Lookup(fields []models.FieldDescriptor, id string) (models.FieldDescriptor, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return models.FieldDescriptor{}, false
}

// Index maps descriptor ids to descriptors.
func Index(fields []models.FieldDescriptor) map[string]models.FieldDescriptor {
	out := make(map[string]models.FieldDescriptor, len(fields))
	for _, f := range fields {
		out[f.ID] = f
	}
	return out
}
