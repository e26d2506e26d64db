// Package config provides the run configuration for the mapzone programs.
//
//   - config.go: Config struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation of enumerations and limits
//
// Configuration is loaded via internal/infra/confloader from a YAML file,
// MAPZONE_* environment variables and command-line flags.
package config
