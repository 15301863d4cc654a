package types

// ConvertConfig holds settings for the convert command.
type ConvertConfig struct {
	// OutDir is the directory for generated JSON files. When empty, output
	// is written next to each input with the extension swapped to .json.
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Force overwrites existing JSON outputs during batch conversion.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// CatalogConfig holds settings for the conversion catalog.
type CatalogConfig struct {
	// Enabled records every successful conversion in the catalog database.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default "dxf2json.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all tool configuration, as read from dxf2json.yaml.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}
