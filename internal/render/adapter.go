package render

import (
	"fmt"
	"math"

	"github.com/GregMSThompson/dashboard-builder/internal/format"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/record"
	"github.com/GregMSThompson/dashboard-builder/pkg/helpers"
)

// Render resolves w against root and returns its render request. It never
// fails: missing or mis-shaped data yields NoData and an unknown kind yields
// an Unsupported payload.
func Render(w models.Widget, root any, opts ...Option) Request {
	cfg := applyOptions(opts)

	req := Request{
		WidgetID: w.ID,
		Kind:     w.Kind,
		Title:    w.Title,
		Width:    w.Width,
		Height:   w.Height,
	}

	switch w.Kind {
	case models.KindBarChart, models.KindLineChart, models.KindPieChart, models.KindAreaChart:
		req.Chart, req.NoData = renderChart(w, root, cfg)
	case models.KindStatCard:
		req.Stat, req.NoData = renderStat(w, root, cfg)
	case models.KindKPICard:
		req.KPI, req.NoData = renderKPI(w, root, cfg)
	case models.KindTable:
		req.Table, req.NoData = renderTable(w, root, cfg)
	default:
		req.Unsupported = &UnsupportedData{Reason: fmt.Sprintf("unsupported widget kind %q", w.Kind)}
	}
	return req
}

// RenderAll renders every widget in order.
func RenderAll(ws []models.Widget, root any, opts ...Option) []Request {
	out := make([]Request, 0, len(ws))
	for _, w := range ws {
		out = append(out, Render(w, root, opts...))
	}
	return out
}

func (c *config) resolve(root any, path string) (any, bool) {
	if path == "" || !c.allowed(path) {
		return nil, false
	}
	return record.Resolve(root, path)
}

// ============================================================================
// CHARTS
// ============================================================================

func renderChart(w models.Widget, root any, cfg *config) (*ChartData, bool) {
	data := &ChartData{
		Points:     []Point{},
		Colors:     append([]string(nil), DefaultColors...),
		ShowGrid:   w.Kind != models.KindPieChart,
		ShowLegend: w.Kind == models.KindPieChart,
	}
	if w.Config != nil && w.Config.Chart != nil {
		cc := w.Config.Chart
		if len(cc.Colors) > 0 {
			data.Colors = append([]string(nil), cc.Colors...)
		}
		data.ShowGrid = helpers.ValueOr(cc.ShowGrid, data.ShowGrid)
		data.ShowLegend = helpers.ValueOr(cc.ShowLegend, data.ShowLegend)
	}

	v, ok := cfg.resolve(root, w.PrimaryField())
	if !ok || record.Classify(v) != record.NodeMapping {
		return data, true
	}

	v.(*record.Map).Range(func(key string, value any) bool {
		n, ok := record.AsNumber(value)
		if !ok {
			return true
		}
		data.Points = append(data.Points, Point{
			Label:   key,
			Value:   n,
			Display: format.Value(n, w.Title),
		})
		return true
	})
	return data, len(data.Points) == 0
}

// ============================================================================
// STAT / KPI
// ============================================================================

func renderStat(w models.Widget, root any, cfg *config) (*StatData, bool) {
	data := &StatData{Label: record.LastSegment(w.PrimaryField())}
	if w.Config != nil && w.Config.Stat != nil {
		data.Prefix = w.Config.Stat.Prefix
		data.Suffix = w.Config.Stat.Suffix
	}

	v, ok := cfg.resolve(root, w.PrimaryField())
	if !ok || record.Classify(v) != record.NodeScalar {
		return data, true
	}
	data.Value = format.Value(v, w.Title)
	if n, ok := record.AsNumber(v); ok {
		data.Raw = &n
	}
	return data, false
}

func renderKPI(w models.Widget, root any, cfg *config) (*KPIData, bool) {
	data := &KPIData{Label: record.LastSegment(w.PrimaryField())}

	v, ok := cfg.resolve(root, w.PrimaryField())
	if !ok || record.Classify(v) != record.NodeScalar {
		return data, true
	}
	data.Value = format.Value(v, w.Title)
	value, isNumber := record.AsNumber(v)
	if isNumber {
		data.Raw = &value
	}

	targetPath := w.SecondaryField()
	tv, ok := cfg.resolve(root, targetPath)
	if !ok {
		return data, false
	}
	target, ok := record.AsNumber(tv)
	if !ok || target == 0 {
		return data, false
	}

	data.Target = &target
	data.TargetDisplay = format.Value(target, w.Title)
	data.TargetLabel = record.LastSegment(targetPath)
	if w.Config != nil && w.Config.KPI != nil && w.Config.KPI.TargetLabel != "" {
		data.TargetLabel = w.Config.KPI.TargetLabel
	}
	if isNumber {
		pct := math.Min(100, 100*value/target)
		data.Percentage = &pct
	}
	return data, false
}

// ============================================================================
// TABLE
// ============================================================================

// scalarColumn names the single column of a table built from scalar rows.
const scalarColumn = "value"

func renderTable(w models.Widget, root any, cfg *config) (*TableData, bool) {
	data := &TableData{Columns: []string{}, Rows: [][]string{}}

	v, ok := cfg.resolve(root, w.PrimaryField())
	if !ok || record.Classify(v) != record.NodeSequence {
		return data, true
	}
	rows := v.([]any)
	if len(rows) == 0 {
		return data, true
	}

	if w.Config != nil && w.Config.Table != nil {
		if limit := w.Config.Table.MaxRows; limit > 0 && len(rows) > limit {
			rows = rows[:limit]
			data.Truncated = true
		}
	}

	first, isRowTable := rows[0].(*record.Map)
	if !isRowTable || first == nil {
		data.Columns = []string{scalarColumn}
		for _, row := range rows {
			data.Rows = append(data.Rows, []string{format.Value(row, w.Title)})
		}
		return data, false
	}

	data.Columns = first.Keys()
	for _, row := range rows {
		m, _ := row.(*record.Map)
		cells := make([]string, len(data.Columns))
		for i, col := range data.Columns {
			cell, _ := m.Get(col)
			cells[i] = format.Value(cell, w.Title)
		}
		data.Rows = append(data.Rows, cells)
	}
	return data, false
}
