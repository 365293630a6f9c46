// Package render resolves a widget's bound fields against a record and packs
// the result into the payload a chart or table renderer consumes.
package render

import "github.com/GregMSThompson/dashboard-builder/internal/models"

// Request is the render-ready description of one widget. Exactly one payload
// pointer is set and it matches Kind. NoData marks a widget whose bound data
// was missing or of the wrong shape; the payload is then present but empty.
type Request struct {
	WidgetID string            `json:"widgetId"`
	Kind     models.WidgetKind `json:"kind"`
	Title    string            `json:"title"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	NoData   bool              `json:"noData"`

	Chart       *ChartData       `json:"chart,omitempty"`
	Stat        *StatData        `json:"stat,omitempty"`
	KPI         *KPIData         `json:"kpi,omitempty"`
	Table       *TableData       `json:"table,omitempty"`
	Unsupported *UnsupportedData `json:"unsupported,omitempty"`
}

// Point is one category/value pair of a chart series.
type Point struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type ChartData struct {
	Points     []Point  `json:"points"`
	Colors     []string `json:"colors"`
	ShowGrid   bool     `json:"showGrid"`
	ShowLegend bool     `json:"showLegend"`
}

type StatData struct {
	Value  string   `json:"value"`
	Raw    *float64 `json:"raw,omitempty"`
	Label  string   `json:"label"`
	Prefix string   `json:"prefix,omitempty"`
	Suffix string   `json:"suffix,omitempty"`
}

type KPIData struct {
	Value         string   `json:"value"`
	Raw           *float64 `json:"raw,omitempty"`
	Label         string   `json:"label"`
	Target        *float64 `json:"target,omitempty"`
	TargetDisplay string   `json:"targetDisplay,omitempty"`
	TargetLabel   string   `json:"targetLabel,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
}

type TableData struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Truncated bool       `json:"truncated,omitempty"`
}

type UnsupportedData struct {
	Reason string `json:"reason"`
}

// DefaultColors is the chart palette used when a widget sets none.
var DefaultColors = []string{
	"hsl(var(--chart-1))",
	"hsl(var(--chart-2))",
	"hsl(var(--chart-3))",
	"hsl(var(--chart-4))",
	"hsl(var(--chart-5))",
}
