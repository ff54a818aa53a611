package config

// MetricsConfig defines where editor metrics are exported.
type MetricsConfig struct {
	// Textfile receives the Prometheus text exposition after each command.
	// Empty disables the export.
	Textfile string `json:"textfile"`
}

// Enabled reports whether a textfile is configured.
func (c MetricsConfig) Enabled() bool { return c.Textfile != "" }
