package config

// HistoryFile is the history section of the configuration file.
type HistoryFile struct {
	// Enabled turns history recording on or off. Nil leaves the default.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Capacity is the number of entries kept. Zero leaves the default.
	Capacity int `yaml:"capacity,omitempty"`

	// Dir is the directory holding the history database.
	Dir string `yaml:"dir,omitempty"`
}

// File represents the structure of the .safescan configuration file.
type File struct {
	// Model is the path of an external model file.
	Model string `yaml:"model,omitempty"`

	// Lang is the display language, e.g. "en" or "ar".
	Lang string `yaml:"lang,omitempty"`

	// Color enables colored output. Nil leaves the default.
	Color *bool `yaml:"color,omitempty"`

	// BatchSize is the number of concurrent analyses in batch mode.
	BatchSize int `yaml:"batchSize,omitempty"`

	// History configures the scan history.
	History HistoryFile `yaml:"history,omitempty"`
}

// ApplyFile copies values from the configuration file into c.
// Fields whose flag was set on the command line are left alone; changed
// reports whether the named flag was set and may be nil.
func (c *Config) ApplyFile(f *File, changed func(flag string) bool) {
	if f == nil {
		return
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if f.Model != "" && !changed("model") {
		c.ModelPath = f.Model
	}
	if f.Lang != "" && !changed("lang") {
		c.Lang = f.Lang
	}
	if f.Color != nil && !changed("no-color") {
		c.Color = *f.Color
	}
	if f.BatchSize != 0 && !changed("batch-size") {
		c.BatchSize = f.BatchSize
	}
	if f.History.Enabled != nil && !changed("no-history") {
		c.HistoryEnabled = *f.History.Enabled
	}
	if f.History.Capacity != 0 {
		c.HistoryCapacity = f.History.Capacity
	}
	if f.History.Dir != "" && !changed("history-dir") {
		c.HistoryDir = f.History.Dir
	}
}

// ApplyEnv copies SAFESCAN_* environment values into c.
// Environment values override the config file but not explicit flags.
func (c *Config) ApplyEnv(getenv func(string) string, changed func(flag string) bool) {
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if v := getenv(EnvModel); v != "" && !changed("model") {
		c.ModelPath = v
	}
	if v := getenv(EnvLang); v != "" && !changed("lang") {
		c.Lang = v
	}
}
