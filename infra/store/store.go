// Package store persists the single autosave slot of the editor. Backends
// hold one serialized document and are selected by configuration.
package store

import (
	"context"

	"github.com/kilianp07/eventplan/config"
	"github.com/kilianp07/eventplan/core/factory"
)

// AutosaveKey names the slot in keyed backends.
const AutosaveKey = "project-editor:autosave"

// Store holds at most one serialized document.
type Store interface {
	// Load returns the stored bytes; the boolean is false when the slot is
	// empty.
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Close() error
}

type backendConf struct {
	Path string `json:"path"`
}

var registry = factory.NewRegistry[Store]()

func init() {
	mustRegister(config.StoreFile, func(conf map[string]any) (Store, error) {
		var c backendConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewFileStore(c.Path), nil
	})
	mustRegister(config.StoreSQLite, func(conf map[string]any) (Store, error) {
		var c backendConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
}

func mustRegister(name string, f factory.Factory[Store]) {
	if err := registry.Register(name, f); err != nil {
		panic(err)
	}
}

// New opens the backend named by cfg.
func New(cfg config.StoreConfig) (Store, error) {
	return registry.Create(factory.ModuleConfig{
		Type: cfg.Backend,
		Conf: map[string]any{"path": cfg.Path},
	})
}

// Backends lists the registered backend names.
func Backends() []string { return registry.Names() }
