// Package buildinfo exposes build information for the mapzone programs.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/mapzone-go/internal/infra/buildinfo.Version=v1.0.0"
//
// When no commit is injected, the VCS revision recorded by the Go
// toolchain is used.
package buildinfo
