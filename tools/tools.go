//go:build tools

// Package tools lists the development tools used by this repo.
// They are run with `go run pkg@version` or installed with `go install`, so none are tracked in go.mod.
package tools

// mockgen - regenerates internal/mocks
//   Run: go generate ./internal/mocks/...
//   Version: go.uber.org/mock/mockgen@v0.6.0 (pinned in internal/mocks/generate.go)
//
// air - live reload for cmd/jobtracker during development
//   Install: go install github.com/air-verse/air@v1.63.0
//   Run: air --build.cmd "go build -o ./tmp/jobtracker ./cmd/jobtracker" --build.bin ./tmp/jobtracker
//
// golangci-lint - the nolint directives in this repo target its linters (forbidigo, ireturn, staticcheck)
//   Install: go install github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest
