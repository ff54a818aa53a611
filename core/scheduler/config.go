package scheduler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/eventplan/core/model"
)

// Template is a reusable placement: a list of durations plus shared
// defaults, stored as YAML or JSON.
type Template struct {
	Durations  []float64          `json:"durations" yaml:"durations"`
	LocationID string             `json:"location_id" yaml:"location_id"`
	TaskID     string             `json:"task_id" yaml:"task_id"`
	Note       string             `json:"note" yaml:"note"`
	Materials  []TemplateMaterial `json:"materials" yaml:"materials"`
}

// TemplateMaterial is one material line of a template.
type TemplateMaterial struct {
	MaterialID string  `json:"material_id" yaml:"material_id"`
	Quantity   float64 `json:"quantity" yaml:"quantity"`
}

// Placement binds the template to an owner and a start instant.
func (t Template) Placement(start Placement) Placement {
	start.Durations = append([]float64(nil), t.Durations...)
	start.Defaults = Defaults{LocationID: t.LocationID, TaskID: t.TaskID, Note: t.Note}
	for _, m := range t.Materials {
		start.Defaults.Materials = append(start.Defaults.Materials, model.MaterialQty{MaterialID: m.MaterialID, Quantity: m.Quantity})
	}
	return start
}

// LoadTemplate loads a Template from a JSON or YAML file.
func LoadTemplate(path string) (Template, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var format string
	switch ext {
	case ".yaml", ".yml":
		format = "yaml"
	case ".json":
		format = "json"
	default:
		return Template{}, fmt.Errorf("unsupported template format: %s", ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return Template{}, err
	}
	defer func() { _ = f.Close() }()
	return DecodeTemplate(f, format)
}

// DecodeTemplate reads a Template from r.
func DecodeTemplate(r io.Reader, format string) (Template, error) {
	var tpl Template
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&tpl); err != nil {
			return tpl, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&tpl); err != nil {
			return tpl, err
		}
	default:
		return tpl, fmt.Errorf("unsupported format: %s", format)
	}
	if len(tpl.Durations) == 0 {
		return tpl, fmt.Errorf("template has no durations")
	}
	for i, m := range tpl.Materials {
		if m.Quantity < 0 {
			return tpl, fmt.Errorf("material %d: quantity must not be negative", i)
		}
	}
	return tpl, nil
}
