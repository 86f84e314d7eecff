//go:build tools

package tools

// Pins developer binaries in go.mod: golangci-lint, goose for migrations,
// swag for the cmd/app OpenAPI docs and benchstat for benchmarks/engine.
import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "golang.org/x/perf/cmd/benchstat"
)
