//go:build tools

package tools

import (
	// Imported anonymously so `go mod tidy` keeps the generator in go.mod.
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
)

// This file imports tools used by `go generate` (see pkg/render/canvas) that
// built code does not otherwise depend on.
