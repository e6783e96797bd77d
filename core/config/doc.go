// Package config provides configuration management for the Unit Loader.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from the `default` struct tags of
// each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (host, port, API key, preload)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Loader: unit source, base path, filename template and manifest path
//
// Nested keys map to environment variables by replacing dots with
// underscores, so loader.base_path is read from LOADER_BASE_PATH.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Loader.Filename)
package config
