// Package output renders run summaries.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned text tables
//   - json.go: indented JSON
//   - yaml.go: YAML via gopkg.in/yaml.v3
//
// Summaries go to stderr so that stdout carries only insertion lines.
package output
