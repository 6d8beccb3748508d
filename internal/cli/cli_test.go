package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/noopejs/go-rgen/internal/generator"
	"github.com/noopejs/go-rgen/internal/models"
	"github.com/noopejs/go-rgen/internal/runner"
	"github.com/stretchr/testify/require"
)

const testWorkspaceRoot = "/workspace"

type stubRunner struct {
	commands []string
	dirs     []string
	fail     map[string]error
	onRun    func(command string)
}

func (r *stubRunner) Run(_ context.Context, dir, command string) (string, error) {
	r.commands = append(r.commands, command)
	r.dirs = append(r.dirs, dir)
	if r.onRun != nil {
		r.onRun(command)
	}
	if err, ok := r.fail[command]; ok {
		return "", &runner.SubprocessError{Cmd: command, Dir: dir, Err: err}
	}
	return "", nil
}

func (r *stubRunner) Stream(ctx context.Context, dir, command string, _, _ io.Writer) error {
	_, err := r.Run(ctx, dir, command)
	return err
}

type cliResult struct {
	out string
	err error
}

func run(t *testing.T, fs filesystem.FileSystem, r runner.Runner, stdin string, args ...string) cliResult {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand(fs, r)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return cliResult{out: out.String(), err: err}
}

func TestNew_Module(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	res := run(t, fs, &stubRunner{}, "", "new", "module", "UserProfile")
	require.NoError(t, res.err)

	dir := filepath.Join(testWorkspaceRoot, "src", "user-profile")
	require.Equal(t, []string{
		dir + "/user-profile.component.tsx",
		dir + "/user-profile.module.ts",
		dir + "/user-profile.service.ts",
		dir + "/user-profile.style.css",
	}, fs.FilePaths(testWorkspaceRoot))

	require.Contains(t, res.out, "-- user-profile/\n---- user-profile.module.ts\n---- user-profile.service.ts\n")
	require.Contains(t, res.out, "Module userProfile generated.")
}

func TestNew_ReservedName(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	res := run(t, fs, &stubRunner{}, "", "new", "moduleComponent", "root")
	require.ErrorIs(t, res.err, models.ErrInvalidUnitName)
	require.False(t, fs.Exists(filepath.Join(testWorkspaceRoot, "src")))

	var rendered bytes.Buffer
	require.Error(t, RenderError(&rendered, res.err))
	require.Contains(t, rendered.String(), `units cannot start with "root"`)
}

func TestNew_MissingArguments(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	res := run(t, fs, &stubRunner{}, "", "new")
	require.ErrorIs(t, res.err, models.ErrInvalidUnitType)

	res = run(t, fs, &stubRunner{}, "", "new", "service")
	require.ErrorIs(t, res.err, models.ErrInvalidUnitName)

	res = run(t, fs, &stubRunner{}, "", "new", "service", "a", "b")
	require.Error(t, res.err)
	require.Empty(t, fs.FilePaths(testWorkspaceRoot))
}

func TestNew_OverwritePrompt(t *testing.T) {
	target := filepath.Join(testWorkspaceRoot, "src", "user-profile", "user-profile.service.ts")

	tests := []struct {
		name      string
		stdin     string
		overwrite bool
	}{
		{name: "lowercase y", stdin: "y\n", overwrite: true},
		{name: "uppercase with spaces", stdin: "  Y \n", overwrite: true},
		{name: "no", stdin: "n\n", overwrite: false},
		{name: "yes is not y", stdin: "yes\n", overwrite: false},
		{name: "closed input", stdin: "", overwrite: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMockFileSystem()
			fs.AddFile(target, []byte("hand written"))

			res := run(t, fs, &stubRunner{}, tt.stdin, "new", "service", "UserProfile")
			require.Contains(t, res.out, "service for user-profile already exists, override?")

			content, err := fs.ReadFile(target)
			require.NoError(t, err)

			if tt.overwrite {
				require.NoError(t, res.err)
				require.Contains(t, string(content), "export class UserProfileService")
				return
			}

			require.ErrorIs(t, res.err, generator.ErrConflictAborted)
			require.Equal(t, "hand written", string(content))

			var rendered bytes.Buffer
			require.NoError(t, RenderError(&rendered, res.err))
			require.Contains(t, rendered.String(), "Aborting...")
		})
	}
}

func TestNew_App(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	r := &stubRunner{}

	res := run(t, fs, r, "", "new", "app", "My Shop")
	require.NoError(t, res.err)

	dir := filepath.Join(testWorkspaceRoot, "my-shop")
	require.True(t, fs.Exists(filepath.Join(dir, "vite.config.js")))
	require.Equal(t, []string{"npm install"}, r.commands)
	require.Equal(t, []string{dir}, r.dirs)
	require.Contains(t, res.out, "cd my-shop")
	require.Contains(t, res.out, "npm run dev")
}

func TestNew_AppSkipInstall(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	r := &stubRunner{}

	res := run(t, fs, r, "", "new", "app", "shop", "--skip-install")
	require.NoError(t, res.err)
	require.Empty(t, r.commands)
	require.True(t, fs.Exists(filepath.Join(testWorkspaceRoot, "shop", "package.json")))
}

func TestNew_AppInstallFailure(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	r := &stubRunner{fail: map[string]error{"npm install": errors.New("exit status 1")}}

	res := run(t, fs, r, "", "new", "app", "shop")
	require.Error(t, res.err)

	var rendered bytes.Buffer
	require.Error(t, RenderError(&rendered, res.err))
	require.Contains(t, rendered.String(), "Try running")
	require.Contains(t, rendered.String(), "npm install")
	require.Contains(t, rendered.String(), "manually to trace the error.")
}

func TestNew_ConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "rgen.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("install:\n  command: pnpm install --silent\n"), 0644))

	fs := filesystem.NewMockFileSystem()
	r := &stubRunner{}

	res := run(t, fs, r, "", "--config", configFile, "new", "app", "shop")
	require.NoError(t, res.err)
	require.Equal(t, []string{"pnpm install --silent"}, r.commands)
}

func TestNew_TemplatesDir(t *testing.T) {
	templatesDir := t.TempDir()
	serviceDir := filepath.Join(templatesDir, "service")
	require.NoError(t, os.MkdirAll(serviceDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(serviceDir, "$kebabed.service.ts"), []byte("// $regularized\n"), 0644))

	configFile := filepath.Join(t.TempDir(), "rgen.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("templates:\n  dir: "+templatesDir+"\n"), 0644))

	fs := filesystem.NewMockFileSystem()
	res := run(t, fs, &stubRunner{}, "", "--config", configFile, "new", "service", "orderItem")
	require.NoError(t, res.err)

	content, err := fs.ReadFile(filepath.Join(testWorkspaceRoot, "src", "order-item", "order-item.service.ts"))
	require.NoError(t, err)
	require.Equal(t, "// Order Item\n", string(content))
}

func TestDev(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(testWorkspaceRoot+"/package.json", []byte(`{"name": "my-shop"}`))
	fs.AddFile(testWorkspaceRoot+"/vite.config.js", []byte("server: {\n  port: 4100,\n},\npreview: { port: 4200 }\n"))
	r := &stubRunner{}

	res := run(t, fs, r, "", "dev")
	require.NoError(t, res.err)
	require.Equal(t, []string{"vite --config vite.config.js"}, r.commands)
	require.Equal(t, []string{testWorkspaceRoot}, r.dirs)
	require.Contains(t, res.out, "my-shop")
	require.Contains(t, res.out, "Running: http://localhost:4100")
}

func TestServe(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	r := &stubRunner{}

	res := run(t, fs, r, "", "serve")
	require.NoError(t, res.err)
	require.Equal(t, []string{"vite preview --config vite.config.js"}, r.commands)
	require.Contains(t, res.out, "Running: http://localhost:3201")
}

func TestBuild(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	chunk := testWorkspaceRoot + "/dist/assets/react-1a2b.js"
	source := "function greet ( name ) {\n    return 'hi ' + name ;\n}\n"
	r := &stubRunner{onRun: func(string) {
		fs.AddFile(chunk, []byte(source))
	}}

	res := run(t, fs, r, "", "build")
	require.NoError(t, res.err)
	require.Equal(t, []string{"vite build --config vite.config.js"}, r.commands)
	require.Contains(t, res.out, "Minified 1 file(s).")
	require.Contains(t, res.out, "Preview: rgen serve")
	require.Contains(t, res.out, "Build of workspace completed.")

	minified, err := fs.ReadFile(chunk)
	require.NoError(t, err)
	require.Less(t, len(minified), len(source))
}

func TestBuild_Failure(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	r := &stubRunner{fail: map[string]error{"vite build --config vite.config.js": errors.New("exit status 2")}}

	res := run(t, fs, r, "", "build")
	require.Error(t, res.err)
	require.NotContains(t, res.out, "Preview:")

	var rendered bytes.Buffer
	require.Error(t, RenderError(&rendered, res.err))
	require.Contains(t, rendered.String(), "vite build --config vite.config.js")
}

func TestTypes(t *testing.T) {
	res := run(t, filesystem.NewMockFileSystem(), &stubRunner{}, "", "types")
	require.NoError(t, res.err)

	for _, unit := range models.UnitTypes() {
		require.Contains(t, res.out, unit.String())
	}
	require.Contains(t, res.out, "$kebabed.module.ts, $kebabed.service.ts, $kebabed.component.tsx, $kebabed.style.css")
	require.Contains(t, res.out, "project directory")
}

func TestRenderError_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderError(&buf, nil))
	require.Empty(t, buf.String())
}
