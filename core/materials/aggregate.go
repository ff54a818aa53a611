// Package materials rolls material quantities up across sessions, per
// material and per owner.
package materials

import (
	"strconv"
	"strings"

	"github.com/kilianp07/eventplan/core/model"
)

// UnknownMaterialName labels rows whose material id is missing from the
// catalog.
const UnknownMaterialName = "Unnamed material"

// OwnerQuantity is one owner's share of a material.
type OwnerQuantity struct {
	OwnerID   string     `json:"owner_id"`
	OwnerRole model.Role `json:"owner_role"`
	OwnerName string     `json:"owner_name"`
	Quantity  float64    `json:"quantity"`
}

// Row is the rollup of one material.
type Row struct {
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Total      float64         `json:"total"`
	Owners     []OwnerQuantity `json:"owners"`
}

// Result holds rows in first-seen order.
type Result struct {
	Rows []Row `json:"rows"`
}

type options struct {
	includeUnused bool
}

// Option tunes Aggregate.
type Option func(*options)

// IncludeUnused appends catalog materials that no session references, with a
// zero total and no owner breakdown.
func IncludeUnused() Option {
	return func(o *options) { o.includeUnused = true }
}

type ownerInfo struct {
	name string
	role model.Role
}

// Aggregate sums every session's materials. Sessions whose owner is not in
// the project are skipped; unknown material ids get a placeholder label.
func Aggregate(p model.Project, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	catalog := make(map[string]model.MaterialType, len(p.MaterialTypes))
	for _, m := range p.MaterialTypes {
		catalog[m.ID] = m
	}
	owners := make(map[string]ownerInfo, len(p.Staff)+1)
	if p.Client != nil {
		owners[p.Client.ID] = ownerInfo{name: p.Client.Name, role: model.RoleClient}
	}
	for _, s := range p.Staff {
		owners[s.ID] = ownerInfo{name: s.Name, role: model.RoleStaff}
	}

	var rows []Row
	index := map[string]int{}
	for _, s := range p.Sessions {
		owner, ok := owners[s.OwnerID]
		if !ok {
			continue
		}
		for _, mq := range s.Materials {
			i, seen := index[mq.MaterialID]
			if !seen {
				row := Row{MaterialID: mq.MaterialID, Name: UnknownMaterialName}
				if m, ok := catalog[mq.MaterialID]; ok {
					row.Name = m.Name
					row.Unit = m.Unit
				}
				rows = append(rows, row)
				i = len(rows) - 1
				index[mq.MaterialID] = i
			}
			row := &rows[i]
			row.Total += mq.Quantity
			row.addOwner(s.OwnerID, owner, mq.Quantity)
		}
	}

	if o.includeUnused {
		for _, m := range p.MaterialTypes {
			if _, seen := index[m.ID]; seen {
				continue
			}
			index[m.ID] = len(rows)
			rows = append(rows, Row{MaterialID: m.ID, Name: m.Name, Unit: m.Unit})
		}
	}
	return Result{Rows: rows}
}

func (r *Row) addOwner(id string, info ownerInfo, qty float64) {
	for i := range r.Owners {
		if r.Owners[i].OwnerID == id {
			r.Owners[i].Quantity += qty
			return
		}
	}
	r.Owners = append(r.Owners, OwnerQuantity{
		OwnerID:   id,
		OwnerRole: info.role,
		OwnerName: info.name,
		Quantity:  qty,
	})
}

// Header is the first line of the delimited text export.
var Header = []string{"Material", "Unit", "Total", "Person", "Role", "Quantity"}

// ToDelimitedText renders one line per (material, owner) pair, joined with
// plain commas. Values are not quoted: a comma inside a name shifts columns.
// pkg/export.WriteCSV produces a quoted rendering.
func ToDelimitedText(r Result) string {
	lines := []string{strings.Join(Header, ",")}
	for _, row := range r.Rows {
		for _, rec := range Records(row) {
			lines = append(lines, strings.Join(rec, ","))
		}
	}
	return strings.Join(lines, "\n")
}

// Records returns the export records of one row. A row without owners yields
// a single record with empty person and role and a zero quantity.
func Records(row Row) [][]string {
	total := FormatQuantity(row.Total)
	if len(row.Owners) == 0 {
		return [][]string{{row.Name, row.Unit, total, "", "", "0"}}
	}
	recs := make([][]string, 0, len(row.Owners))
	for _, o := range row.Owners {
		recs = append(recs, []string{row.Name, row.Unit, total, o.OwnerName, string(o.OwnerRole), FormatQuantity(o.Quantity)})
	}
	return recs
}

// FormatQuantity prints q in its shortest decimal form.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
