package e2e_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/noopejs/go-rgen/internal/cli"
	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/noopejs/go-rgen/internal/placeholder"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type recordingRunner struct {
	commands []string
}

func (r *recordingRunner) Run(_ context.Context, dir, command string) (string, error) {
	r.commands = append(r.commands, dir+": "+command)
	return "", nil
}

func (r *recordingRunner) Stream(ctx context.Context, dir, command string, _, _ io.Writer) error {
	_, err := r.Run(ctx, dir, command)
	return err
}

func execute(t *testing.T, fs filesystem.FileSystem, r *recordingRunner, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := cli.NewRootCommand(fs, r)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cli.RenderError(&out, cmd.Execute())
	return out.String(), err
}

func TestFullWorkflow(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.SetCurrentDir("/projects")
	r := &recordingRunner{}

	// Test: Application scaffold
	_, err := execute(t, fs, r, "", "new", "app", "Pet Store")
	require.NoError(t, err)

	manifest, err := fs.ReadFile("/projects/pet-store/package.json")
	require.NoError(t, err)
	require.Equal(t, "pet-store", gjson.GetBytes(manifest, "name").String())

	index, err := fs.ReadFile("/projects/pet-store/index.html")
	require.NoError(t, err)
	require.Contains(t, string(index), "<title>Pet Store</title>")
	require.Equal(t, []string{"/projects/pet-store: npm install"}, r.commands)

	// Test: Units inside the new application
	fs.SetCurrentDir("/projects/pet-store")

	_, err = execute(t, fs, r, "", "new", "module", "Inventory")
	require.NoError(t, err)

	// a declined overwrite is a clean no-op
	out, err := execute(t, fs, r, "n\n", "new", "moduleComponent", "inventory")
	require.NoError(t, err)
	require.Contains(t, out, "Aborting...")
	require.Contains(t, mustRead(t, fs, "/projects/pet-store/src/inventory/inventory.component.tsx"), "InventoryComponent")

	out, err = execute(t, fs, r, "y\n", "new", "moduleComponent", "inventory")
	require.NoError(t, err)
	require.Contains(t, out, "moduleComponent for inventory already exists, override?")

	_, err = execute(t, fs, r, "", "new", "service", "stockLevel")
	require.NoError(t, err)
	require.Contains(t, mustRead(t, fs, "/projects/pet-store/src/stock-level/stock-level.service.ts"), "export class StockLevelService")

	// Test: Reserved names stay with the application root
	out, err = execute(t, fs, r, "", "new", "module", "rootPanel")
	require.Error(t, err)
	require.Contains(t, out, "units cannot start with")
	require.False(t, fs.Exists("/projects/pet-store/src/root-panel"))

	// Test: No placeholder survives anywhere in the tree
	for _, path := range fs.FilePaths("/projects/pet-store") {
		require.False(t, placeholder.Contains(path), path)
		require.False(t, placeholder.Contains(mustRead(t, fs, path)), path)
	}

	// Test: Build tool commands run in the application
	r.commands = nil
	for _, sub := range []string{"dev", "serve"} {
		_, err = execute(t, fs, r, "", sub)
		require.NoError(t, err)
	}
	require.Equal(t, []string{
		"/projects/pet-store: vite --config vite.config.js",
		"/projects/pet-store: vite preview --config vite.config.js",
	}, r.commands)
}

func mustRead(t *testing.T, fs filesystem.FileSystem, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
