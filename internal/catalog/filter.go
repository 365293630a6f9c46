package catalog

import (
	"sort"
	"strings"

	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/record"
)

// kindValueTypes is the closed kind -> bindable value type table. A new widget
// kind needs a row here and a matching branch in render.Render.
var kindValueTypes = map[models.WidgetKind]models.ValueType{
	models.KindStatCard:  models.ValueNumber,
	models.KindKPICard:   models.ValueNumber,
	models.KindTable:     models.ValueArray,
	models.KindBarChart:  models.ValueObject,
	models.KindLineChart: models.ValueObject,
	models.KindPieChart:  models.ValueObject,
	models.KindAreaChart: models.ValueObject,
}

// FilteredKinds lists every kind that narrows the catalog.
func FilteredKinds() []models.WidgetKind {
	out := make([]models.WidgetKind, 0, len(kindValueTypes))
	for k := range kindValueTypes {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValueTypeFor returns the value type a kind binds. ok is false for kinds
// that accept anything.
func ValueTypeFor(kind models.WidgetKind) (models.ValueType, bool) {
	vt, ok := kindValueTypes[kind]
	return vt, ok
}

// Accepts reports whether a field of type vt can be bound by kind.
func Accepts(kind models.WidgetKind, vt models.ValueType) bool {
	want, ok := kindValueTypes[kind]
	if !ok {
		return true
	}
	return want == vt
}

// FilterFor narrows fields to those kind can bind. Unknown kinds get the
// whole catalog back.
func FilterFor(fields []models.FieldDescriptor, kind models.WidgetKind) []models.FieldDescriptor {
	out := make([]models.FieldDescriptor, 0, len(fields))
	for _, f := range fields {
		if Accepts(kind, f.ValueType) {
			out = append(out, f)
		}
	}
	return out
}

// Group is one category of the catalog in source order.
type Group struct {
	Category string                   `json:"category"`
	Fields   []models.FieldDescriptor `json:"fields"`
}

// GroupByCategory buckets fields by the first path segment, keeping the
// order in which categories first appear.
func GroupByCategory(fields []models.FieldDescriptor) []Group {
	var groups []Group
	pos := map[string]int{}
	for _, f := range fields {
		cat := record.Category(f.Path)
		i, ok := pos[cat]
		if !ok {
			i = len(groups)
			pos[cat] = i
			groups = append(groups, Group{Category: cat})
		}
		groups[i].Fields = append(groups[i].Fields, f)
	}
	return groups
}

// Search keeps fields whose label contains term, case-insensitively. A blank
// term matches everything.
func Search(fields []models.FieldDescriptor, term string) []models.FieldDescriptor {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return fields
	}
	out := []models.FieldDescriptor{}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.Label), term) {
			out = append(out, f)
		}
	}
	return out
}
