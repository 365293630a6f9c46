package layout

import "github.com/GregMSThompson/dashboard-builder/internal/models"

// Template is one palette entry a user picks to create a widget.
type Template struct {
	Kind        models.WidgetKind `json:"kind"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
}

var templates = []Template{
	{models.KindBarChart, "Bar Chart", "Compare values across categories"},
	{models.KindLineChart, "Line Chart", "Show trends over time"},
	{models.KindPieChart, "Pie Chart", "Display proportion of categories"},
	{models.KindAreaChart, "Area Chart", "Visualize volume over time"},
	{models.KindStatCard, "Stat Card", "Display a single important metric"},
	{models.KindTable, "Table", "Show detailed data in rows and columns"},
	{models.KindKPICard, "KPI Card", "Track performance against targets"},
}

// Templates returns the palette in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateFor returns the palette entry for kind.
func TemplateFor(kind models.WidgetKind) (Template, bool) {
	for _, t := range templates {
		if t.Kind == kind {
			return t, true
		}
	}
	return Template{}, false
}

// FromTemplate creates a widget from the palette entry for kind.
func FromTemplate(kind models.WidgetKind) (models.Widget, bool) {
	t, ok := TemplateFor(kind)
	if !ok {
		return models.Widget{}, false
	}
	return NewWidget(t.Kind, t.Title), true
}
