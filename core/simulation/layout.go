// Package simulation places locations on a schematic unit square and
// estimates where each owner is at any instant of the timeline.
package simulation

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/kilianp07/eventplan/core/model"
)

// Layout maps location ids to points in [0,1]x[0,1].
type Layout map[string]r2.Vec

// Fallback ring for locations without coordinates. The radius cycles through
// fallbackRings values by index so neighbours do not collide.
const (
	fallbackRadius = 0.3
	fallbackStep   = 0.05
	fallbackRings  = 5
)

// BuildLayout normalizes located locations against the extrema of all
// located locations, with north up. Others are spread on a ring around the
// center.
func BuildLayout(p model.Project) Layout {
	layout := make(Layout, len(p.Locations))
	if len(p.Locations) == 0 {
		return layout
	}

	var lats, lngs []float64
	for _, l := range p.Locations {
		if l.HasCoordinates() {
			lats = append(lats, *l.Lat)
			lngs = append(lngs, *l.Lng)
		}
	}
	var minLat, minLng, latRange, lngRange float64
	if len(lats) > 0 {
		minLat, minLng = floats.Min(lats), floats.Min(lngs)
		latRange = span(minLat, floats.Max(lats))
		lngRange = span(minLng, floats.Max(lngs))
	}

	n := float64(len(p.Locations))
	for i, l := range p.Locations {
		if l.HasCoordinates() {
			layout[l.ID] = r2.Vec{
				X: (*l.Lng - minLng) / lngRange,
				Y: 1 - (*l.Lat-minLat)/latRange,
			}
			continue
		}
		angle := float64(i) / n * 2 * math.Pi
		radius := fallbackRadius + float64(i%fallbackRings)*fallbackStep
		layout[l.ID] = r2.Vec{
			X: 0.5 + radius*math.Cos(angle),
			Y: 0.5 + radius*math.Sin(angle),
		}
	}
	return layout
}

// span returns max-min, or 1 when the range is empty.
func span(min, max float64) float64 {
	if r := max - min; r != 0 {
		return r
	}
	return 1
}
