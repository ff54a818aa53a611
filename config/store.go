package config

import "fmt"

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// StoreConfig selects where the autosave slot lives.
type StoreConfig struct {
	// Backend selects the slot type: "file" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file or database location.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = StoreFile
	}
	if c.Path == "" {
		switch c.Backend {
		case StoreSQLite:
			c.Path = "eventplan.db"
		default:
			c.Path = "autosave.eventplan.json"
		}
	}
}

// Validate checks mandatory fields.
func (c StoreConfig) Validate() error {
	if c.Backend != StoreFile && c.Backend != StoreSQLite {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}
