package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to. Empty binds all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// Preload loads the shared unit declared by the manifest at startup.
	Preload bool `mapstructure:"preload" default:"true"`
}

// Address returns the listen address in host:port form.
func (c Config) Address() string {
	return c.Host + ":" + strings.TrimPrefix(c.Port, ":")
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
