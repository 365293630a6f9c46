package catalog

import (
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/record"
)

// Selection is an ordered set of selected field ids.
type Selection []string

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle adds id if absent and removes it otherwise.
func (s Selection) Toggle(id string) Selection {
	if s.Has(id) {
		out := make(Selection, 0, len(s)-1)
		for _, v := range s {
			if v != id {
				out = append(out, v)
			}
		}
		return out
	}
	return append(append(Selection{}, s...), id)
}

// SelectAllInCategory selects every field of category. When all of them are
// already selected the category is cleared instead.
func (s Selection) SelectAllInCategory(fields []models.FieldDescriptor, category string) Selection {
	var ids []string
	for _, f := range fields {
		if record.Category(f.Path) == category {
			ids = append(ids, f.ID)
		}
	}
	if len(ids) == 0 {
		return s
	}

	all := true
	for _, id := range ids {
		if !s.Has(id) {
			all = false
			break
		}
	}

	if all {
		drop := make(map[string]bool, len(ids))
		for _, id := range ids {
			drop[id] = true
		}
		out := Selection{}
		for _, v := range s {
			if !drop[v] {
				out = append(out, v)
			}
		}
		return out
	}

	out := append(Selection{}, s...)
	for _, id := range ids {
		if !out.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Known drops ids that are not in the catalog and removes duplicates.
func (s Selection) Known(fields []models.FieldDescriptor) Selection {
	idx := Index(fields)
	seen := map[string]bool{}
	out := Selection{}
	for _, id := range s {
		if _, ok := idx[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
