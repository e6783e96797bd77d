package resource

// Config holds configuration for locating and fetching unit resources.
type Config struct {
	// Source selects where units are fetched from (fs, storage).
	Source string `mapstructure:"source" default:"fs"`
	// BasePath is the directory or object prefix holding built units.
	BasePath string `mapstructure:"base_path" default:"dist"`
	// Filename is the output filename template, e.g. "[name].bundle.lua".
	Filename string `mapstructure:"filename" default:"[name].bundle.lua"`
	// Manifest is an optional path to the HCL build manifest.
	Manifest string `mapstructure:"manifest" default:""`
}

const (
	SourceFS      = "fs"
	SourceStorage = "storage"
)

// IsValidSource checks if the configured source is supported.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceFS, SourceStorage:
		return true
	default:
		return false
	}
}
