// Package clitest builds command contexts over an in-memory medium for command tests.
package clitest

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/config"
	"github.com/julianstephens/humidor/internal/storage"
	"github.com/julianstephens/humidor/internal/storage/memory"
)

// New returns a context whose output is captured and whose prompts answer yes.
func New(t *testing.T, opts ...storage.Option) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	return NewWithProvider(t, memory.New(), opts...)
}

// NewWithProvider is New over an already initialized provider.
func NewWithProvider(t *testing.T, p storage.Provider, opts ...storage.Option) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	ctx := cli.NewContext(context.Background(), p, cfg, opts...)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")
	ctx.Yes = true
	return ctx, out
}
