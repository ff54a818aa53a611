package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/eventplan/core/model"
)

func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: expected RFC 3339, e.g. 2024-06-01T09:00:00Z", s)
	}
	return model.Instant(t), nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(model.TimeLayout)
}

// parseMaterials reads "materialID=quantity" pairs.
func parseMaterials(pairs []string) ([]model.MaterialQty, error) {
	var out []model.MaterialQty
	for _, p := range pairs {
		id, qty, ok := strings.Cut(p, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid material %q: expected id=quantity", p)
		}
		q, err := strconv.ParseFloat(qty, 64)
		if err != nil || q < 0 {
			return nil, fmt.Errorf("invalid quantity in %q", p)
		}
		out = append(out, model.MaterialQty{MaterialID: id, Quantity: q})
	}
	return out, nil
}

func optionalString(changed bool, v string) *string {
	if !changed {
		return nil
	}
	return &v
}
