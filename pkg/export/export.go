// Package export renders materials rollups and playback frames for other
// tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/kilianp07/eventplan/core/materials"
	"github.com/kilianp07/eventplan/core/model"
	"github.com/kilianp07/eventplan/core/simulation"
)

// WriteJSON writes the materials rollup to w in JSON format.
func WriteJSON(w io.Writer, r materials.Result) error {
	if r.Rows == nil {
		r.Rows = []materials.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes the materials rollup to w as RFC 4180 CSV, quoting names
// that contain separators.
func WriteCSV(w io.Writer, r materials.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(materials.Header); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if err := cw.WriteAll(materials.Records(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFramesCSV writes one line per owner and frame, owners sorted by id.
func WriteFramesCSV(w io.Writer, frames []simulation.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"at", "owner_id", "x", "y"}); err != nil {
		return err
	}
	for _, f := range frames {
		ids := make([]string, 0, len(f.Positions))
		for id := range f.Positions {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		at := f.At.UTC().Format(model.TimeLayout)
		for _, id := range ids {
			pos := f.Positions[id]
			rec := []string{
				at,
				id,
				strconv.FormatFloat(pos.X, 'f', 4, 64),
				strconv.FormatFloat(pos.Y, 'f', 4, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
