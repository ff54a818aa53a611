package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/eventplan/core/materials"
)

// WriteMaterialsChart renders the rollup as a standalone HTML page with one
// bar per material, stacked by owner.
func WriteMaterialsChart(w io.Writer, title string, r materials.Result) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Material"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Quantity"}),
	)

	var xAxis []string
	var owners []string
	shares := map[string][]float64{}
	for i, row := range r.Rows {
		label := row.Name
		if row.Unit != "" {
			label = fmt.Sprintf("%s (%s)", row.Name, row.Unit)
		}
		xAxis = append(xAxis, label)
		for _, o := range row.Owners {
			if _, ok := shares[o.OwnerName]; !ok {
				owners = append(owners, o.OwnerName)
				shares[o.OwnerName] = make([]float64, len(r.Rows))
			}
			shares[o.OwnerName][i] += o.Quantity
		}
	}

	bar.SetXAxis(xAxis)
	for _, name := range owners {
		data := make([]opts.BarData, len(r.Rows))
		for i, q := range shares[name] {
			data[i] = opts.BarData{Value: q}
		}
		bar.AddSeries(name, data, charts.WithBarChartOpts(opts.BarChart{Stack: "owners"}))
	}

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
