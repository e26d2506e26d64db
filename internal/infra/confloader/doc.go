// Package confloader loads mapzone configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. Defaults already present in the target struct
//  2. A YAML configuration file
//  3. MAPZONE_* environment variables
//  4. Command-line flags, set with WithOverrides
//
// Sources reports which layers the last Load applied.
//
// Watcher reports writes to the configuration file so long-lived
// settings such as the log level can be reapplied while a run is in
// progress.
package confloader
