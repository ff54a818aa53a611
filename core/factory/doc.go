// Package factory provides a small generic registry used to instantiate
// backends from configuration. A backend is named by a type string and
// carries a map of raw settings that its factory decodes into a typed struct.
//
// Example usage:
//
//	reg := factory.NewRegistry[Store]()
//	reg.Register("file", func(conf map[string]any) (Store, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewFileStore(c.Path), nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "autosave.json"}})
package factory
