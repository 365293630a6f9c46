package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/dashboard-builder/internal/catalog"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/record"
	"github.com/GregMSThompson/dashboard-builder/pkg/helpers"
)

func mustParse(t *testing.T, doc string) any {
	t.Helper()
	v, err := record.ParseJSON([]byte(doc))
	require.NoError(t, err)
	return v
}

func newWidget(kind models.WidgetKind, title string, fields ...string) models.Widget {
	return models.Widget{ID: "w1", Kind: kind, Title: title, Fields: fields, Width: 2, Height: 2}
}

func TestRender_ChartKeepsKeyOrder(t *testing.T) {
	root := record.Sample()
	for _, kind := range []models.WidgetKind{models.KindBarChart, models.KindLineChart, models.KindPieChart, models.KindAreaChart} {
		t.Run(string(kind), func(t *testing.T) {
			req := Render(newWidget(kind, "Revenue by Quarter", "revenue.byQuarter"), root)

			require.NotNil(t, req.Chart)
			assert.False(t, req.NoData)
			assert.Nil(t, req.Stat)
			assert.Equal(t, []Point{
				{"Q1", 280000, "$280,000"},
				{"Q2", 310000, "$310,000"},
				{"Q3", 350000, "$350,000"},
				{"Q4", 310000, "$310,000"},
			}, req.Chart.Points)
			assert.Equal(t, kind == models.KindPieChart, req.Chart.ShowLegend)
		})
	}
}

func TestRender_ChartNoData(t *testing.T) {
	root := record.Sample()
	tests := map[string]string{
		"absent":     "revenue.missing",
		"scalar":     "revenue.total",
		"sequence":   "products.topSelling",
		"no binding": "",
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			w := newWidget(models.KindBarChart, "x")
			if path != "" {
				w.Fields = []string{path}
			}
			req := Render(w, root)
			assert.True(t, req.NoData)
			require.NotNil(t, req.Chart)
			assert.Empty(t, req.Chart.Points)
		})
	}
}

func TestRender_ChartConfig(t *testing.T) {
	w := newWidget(models.KindBarChart, "Costs", "expenses.byQuarter")
	w.Config = &models.KindConfig{Chart: &models.ChartConfig{
		Colors:     []string{"red"},
		ShowGrid:   helpers.Ptr(false),
		ShowLegend: helpers.Ptr(true),
	}}

	req := Render(w, record.Sample())
	assert.Equal(t, []string{"red"}, req.Chart.Colors)
	assert.False(t, req.Chart.ShowGrid)
	assert.True(t, req.Chart.ShowLegend)
	assert.Equal(t, "180,000", req.Chart.Points[0].Display)
}

func TestRender_Stat(t *testing.T) {
	req := Render(newWidget(models.KindStatCard, "Total Revenue", "revenue.total"), record.Sample())

	require.NotNil(t, req.Stat)
	assert.False(t, req.NoData)
	assert.Equal(t, "$1,250,000", req.Stat.Value)
	assert.Equal(t, "total", req.Stat.Label)
	require.NotNil(t, req.Stat.Raw)
	assert.Equal(t, 1250000.0, *req.Stat.Raw)

	req = Render(newWidget(models.KindStatCard, "Company", "name"), record.Sample())
	assert.Equal(t, "Acme Corporation", req.Stat.Value)
	assert.Nil(t, req.Stat.Raw)

	req = Render(newWidget(models.KindStatCard, "Missing", "customers.churned"), record.Sample())
	assert.True(t, req.NoData)
	assert.Equal(t, "churned", req.Stat.Label)
	assert.Empty(t, req.Stat.Value)
}

func TestRender_KPI(t *testing.T) {
	root := mustParse(t, `{"value": 150, "target": 100, "low": 25, "zero": 0, "label": "n/a"}`)

	req := Render(newWidget(models.KindKPICard, "Conversion rate", "value", "target"), root)
	require.NotNil(t, req.KPI)
	require.NotNil(t, req.KPI.Percentage)
	assert.Equal(t, 100.0, *req.KPI.Percentage)
	assert.Equal(t, "150.0%", req.KPI.Value)
	assert.Equal(t, "100.0%", req.KPI.TargetDisplay)
	assert.Equal(t, "target", req.KPI.TargetLabel)

	req = Render(newWidget(models.KindKPICard, "Customers", "low", "target"), root)
	assert.Equal(t, 25.0, *req.KPI.Percentage)

	req = Render(newWidget(models.KindKPICard, "Customers", "low", "zero"), root)
	assert.Nil(t, req.KPI.Target)
	assert.Nil(t, req.KPI.Percentage)
	assert.False(t, req.NoData)

	req = Render(newWidget(models.KindKPICard, "Customers", "low"), root)
	assert.Nil(t, req.KPI.Target)

	req = Render(newWidget(models.KindKPICard, "Customers", "low", "label"), root)
	assert.Nil(t, req.KPI.Target)

	w := newWidget(models.KindKPICard, "Customers", "low", "target")
	w.Config = &models.KindConfig{KPI: &models.KPIConfig{TargetLabel: "Goal"}}
	assert.Equal(t, "Goal", Render(w, root).KPI.TargetLabel)
}

func TestRender_Table(t *testing.T) {
	req := Render(newWidget(models.KindTable, "Top Selling Products", "products.topSelling"), record.Sample())

	require.NotNil(t, req.Table)
	assert.False(t, req.NoData)
	assert.Equal(t, []string{"id", "name", "sales", "revenue"}, req.Table.Columns)
	require.Len(t, req.Table.Rows, 4)
	assert.Equal(t, []string{"prod-1", "Premium Widget", "1,200", "240,000"}, req.Table.Rows[0])
}

func TestRender_TableShapes(t *testing.T) {
	root := mustParse(t, `{"rows": [{"a": 1, "b": "x"}, {"b": "y", "c": 3}], "tags": ["p", "q"], "empty": []}`)

	req := Render(newWidget(models.KindTable, "Rows", "rows"), root)
	assert.Equal(t, []string{"a", "b"}, req.Table.Columns)
	assert.Equal(t, [][]string{{"1", "x"}, {"", "y"}}, req.Table.Rows)

	req = Render(newWidget(models.KindTable, "Tags", "tags"), root)
	assert.Equal(t, []string{"value"}, req.Table.Columns)
	assert.Equal(t, [][]string{{"p"}, {"q"}}, req.Table.Rows)

	req = Render(newWidget(models.KindTable, "Empty", "empty"), root)
	assert.True(t, req.NoData)
	assert.Empty(t, req.Table.Rows)

	w := newWidget(models.KindTable, "Rows", "rows")
	w.Config = &models.KindConfig{Table: &models.TableConfig{MaxRows: 1}}
	req = Render(w, root)
	assert.Len(t, req.Table.Rows, 1)
	assert.True(t, req.Table.Truncated)
}

func TestRender_Unsupported(t *testing.T) {
	req := Render(newWidget("heatmap", "Heat", "revenue.byQuarter"), record.Sample())
	require.NotNil(t, req.Unsupported)
	assert.Contains(t, req.Unsupported.Reason, "heatmap")
	assert.Nil(t, req.Chart)
}

func TestRender_WithCatalogDegradesUnknownPaths(t *testing.T) {
	root := record.Sample()
	fields := catalog.Build(root)

	// resolves in the record but is folded into an aggregate field
	w := newWidget(models.KindStatCard, "Q1", "revenue.byQuarter.Q1")
	assert.False(t, Render(w, root).NoData)
	assert.True(t, Render(w, root, WithCatalog(fields)).NoData)

	w = newWidget(models.KindStatCard, "Total Revenue", "revenue.total")
	assert.False(t, Render(w, root, WithCatalog(fields)).NoData)
}

func TestRender_EveryKindDispatched(t *testing.T) {
	for _, kind := range models.Kinds() {
		req := Render(newWidget(kind, "x"), nil)
		assert.Nil(t, req.Unsupported, kind)
		_, filtered := catalog.ValueTypeFor(kind)
		assert.True(t, filtered, "%s has no catalog filter row", kind)
	}
}

func TestRenderAll_KeepsOrder(t *testing.T) {
	a := newWidget(models.KindStatCard, "A", "customers.new")
	a.ID = "a"
	b := newWidget(models.KindStatCard, "B", "customers.returning")
	b.ID = "b"

	reqs := RenderAll([]models.Widget{b, a}, record.Sample())
	require.Len(t, reqs, 2)
	assert.Equal(t, "b", reqs[0].WidgetID)
	assert.Equal(t, "4,600", reqs[0].Stat.Value)
	assert.Equal(t, "a", reqs[1].WidgetID)
}
