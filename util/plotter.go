package util

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"localgame-server/models/venue"
)

const (
	pinSize         = 14
	selectedPinSize = 26
)

var statusSeriesOrder = []venue.Status{venue.StatusLive, venue.StatusBusy, venue.StatusQuiet}

// NewVenueMapChart builds a scatter chart of the venues' schematic coordinates,
// one series per status. The selected venue gets a larger pin.
func NewVenueMapChart(venues []venue.Venue, selectedID string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Explore venues",
			Width:     "800px",
			Height:    "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Explore venues",
			Subtitle: fmt.Sprintf("%d venues", len(venues)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: venue.MinCoord, Max: venue.MaxCoord}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: venue.MinCoord, Max: venue.MaxCoord}),
	)

	byStatus := make(map[venue.Status][]opts.ScatterData, len(statusSeriesOrder))
	for _, v := range venues {
		size := pinSize
		if v.ID == selectedID {
			size = selectedPinSize
		}
		byStatus[v.Status] = append(byStatus[v.Status], opts.ScatterData{
			Name:       v.Name,
			Value:      []interface{}{v.X, v.Y},
			SymbolSize: size,
		})
	}

	for _, status := range statusSeriesOrder {
		points, ok := byStatus[status]
		if !ok {
			continue
		}
		scatter.AddSeries(status.Label(), points,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
		)
	}
	return scatter
}

// RenderVenueMap renders the schematic venue map as HTML.
func RenderVenueMap(w io.Writer, venues []venue.Venue, selectedID string) error {
	if err := NewVenueMapChart(venues, selectedID).Render(w); err != nil {
		return fmt.Errorf("failed to render venue map: %w", err)
	}
	return nil
}

// PlotVenueMap writes the schematic venue map to an HTML file.
func PlotVenueMap(path string, venues []venue.Venue, selectedID string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer f.Close()

	return RenderVenueMap(f, venues, selectedID)
}
