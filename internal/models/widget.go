package models

// WidgetKind names one of the supported presentation types.
type WidgetKind string

const (
	KindBarChart  WidgetKind = "bar-chart"
	KindLineChart WidgetKind = "line-chart"
	KindPieChart  WidgetKind = "pie-chart"
	KindAreaChart WidgetKind = "area-chart"
	KindStatCard  WidgetKind = "stat-card"
	KindTable     WidgetKind = "table"
	KindKPICard   WidgetKind = "kpi-card"
)

// Widget size bounds, in grid cells.
const (
	MinWidth      = 1
	MaxWidth      = 4
	MinHeight     = 1
	MaxHeight     = 3
	DefaultWidth  = 2
	DefaultHeight = 2
)

// Kinds returns every supported widget kind in palette order.
func Kinds() []WidgetKind {
	return []WidgetKind{
		KindBarChart, KindLineChart, KindPieChart, KindAreaChart,
		KindStatCard, KindTable, KindKPICard,
	}
}

// Valid reports whether k is a supported kind.
func (k WidgetKind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// IsChart reports whether k renders a category/value series.
func (k WidgetKind) IsChart() bool {
	switch k {
	case KindBarChart, KindLineChart, KindPieChart, KindAreaChart:
		return true
	}
	return false
}

// Widget is one dashboard widget bound to record fields.
// Fields[0] is the primary value; for kpi-card Fields[1] is the target.
type Widget struct {
	ID     string      `json:"id" toml:"id"`
	Kind   WidgetKind  `json:"kind" toml:"kind"`
	Title  string      `json:"title" toml:"title"`
	Fields []string    `json:"fields" toml:"fields"`
	Width  int         `json:"width" toml:"width"`
	Height int         `json:"height" toml:"height"`
	Config *KindConfig `json:"config,omitempty" toml:"config,omitempty"`
}

// Clone returns a deep copy so callers can edit without touching a
// collection's copy.
func (w Widget) Clone() Widget {
	out := w
	if w.Fields != nil {
		out.Fields = append([]string(nil), w.Fields...)
	}
	if w.Config != nil {
		cfg := w.Config.clone()
		out.Config = &cfg
	}
	return out
}

// PrimaryField returns Fields[0], or "" when nothing is bound.
func (w Widget) PrimaryField() string {
	if len(w.Fields) == 0 {
		return ""
	}
	return w.Fields[0]
}

// SecondaryField returns Fields[1], or "" when it is not bound.
func (w Widget) SecondaryField() string {
	if len(w.Fields) < 2 {
		return ""
	}
	return w.Fields[1]
}

// KindConfig carries kind-specific overrides. At most one member is set and it
// must match the widget's kind.
type KindConfig struct {
	Chart *ChartConfig `json:"chart,omitempty" toml:"chart,omitempty"`
	Stat  *StatConfig  `json:"stat,omitempty" toml:"stat,omitempty"`
	KPI   *KPIConfig   `json:"kpi,omitempty" toml:"kpi,omitempty"`
	Table *TableConfig `json:"table,omitempty" toml:"table,omitempty"`
}

type ChartConfig struct {
	Colors     []string `json:"colors,omitempty" toml:"colors,omitempty"`
	ShowGrid   *bool    `json:"showGrid,omitempty" toml:"showGrid,omitempty"`
	ShowLegend *bool    `json:"showLegend,omitempty" toml:"showLegend,omitempty"`
}

type StatConfig struct {
	Prefix string `json:"prefix,omitempty" toml:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty" toml:"suffix,omitempty"`
}

type KPIConfig struct {
	TargetLabel string `json:"targetLabel,omitempty" toml:"targetLabel,omitempty"`
}

type TableConfig struct {
	MaxRows int `json:"maxRows,omitempty" toml:"maxRows,omitempty"`
}

// Variants returns the names of the members that are set.
func (c KindConfig) Variants() []string {
	var out []string
	if c.Chart != nil {
		out = append(out, "chart")
	}
	if c.Stat != nil {
		out = append(out, "stat")
	}
	if c.KPI != nil {
		out = append(out, "kpi")
	}
	if c.Table != nil {
		out = append(out, "table")
	}
	return out
}

// VariantFor returns the config member name that applies to kind.
func VariantFor(kind WidgetKind) string {
	switch {
	case kind.IsChart():
		return "chart"
	case kind == KindStatCard:
		return "stat"
	case kind == KindKPICard:
		return "kpi"
	case kind == KindTable:
		return "table"
	}
	return ""
}

func (c KindConfig) clone() KindConfig {
	out := KindConfig{}
	if c.Chart != nil {
		ch := *c.Chart
		ch.Colors = append([]string(nil), c.Chart.Colors...)
		out.Chart = &ch
	}
	if c.Stat != nil {
		s := *c.Stat
		out.Stat = &s
	}
	if c.KPI != nil {
		k := *c.KPI
		out.KPI = &k
	}
	if c.Table != nil {
		t := *c.Table
		out.Table = &t
	}
	return out
}
