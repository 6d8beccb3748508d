package buildtool

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/noopejs/go-rgen/internal/config"
	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/noopejs/go-rgen/internal/logger"
)

// Mode selects the vite sub-command.
type Mode string

const (
	ModeDev     Mode = "dev"
	ModeBuild   Mode = "build"
	ModePreview Mode = "preview"
)

// Command returns the vite command line for mode.
func Command(mode Mode, viteConfig string) string {
	switch mode {
	case ModeBuild:
		return fmt.Sprintf("vite build --config %s", viteConfig)
	case ModePreview:
		return fmt.Sprintf("vite preview --config %s", viteConfig)
	default:
		return fmt.Sprintf("vite --config %s", viteConfig)
	}
}

// Ports are the dev server and preview server ports.
type Ports struct {
	Dev     int
	Preview int
}

var (
	serverPort  = regexp.MustCompile(`\bserver\s*:\s*\{[^{}]*?\bport\s*:\s*(\d+)`)
	previewPort = regexp.MustCompile(`\bpreview\s*:\s*\{[^{}]*?\bport\s*:\s*(\d+)`)
)

// ResolvePorts picks each port from override when set, then from the
// server/preview blocks of the vite config file, then the defaults.
func ResolvePorts(fsys filesystem.FileSystem, dir, viteConfig string, override Ports) Ports {
	ports := Ports{Dev: config.DefaultDevPort, Preview: config.DefaultPreviewPort}

	path := viteConfig
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if data, err := fsys.ReadFile(path); err == nil {
		if port, ok := findPort(serverPort, data); ok {
			ports.Dev = port
		}
		if port, ok := findPort(previewPort, data); ok {
			ports.Preview = port
		}
	} else {
		logger.Debug("could not read %s: %v", path, err)
	}

	if override.Dev > 0 {
		ports.Dev = override.Dev
	}
	if override.Preview > 0 {
		ports.Preview = override.Preview
	}
	return ports
}

func findPort(re *regexp.Regexp, data []byte) (int, bool) {
	m := re.FindSubmatch(data)
	if m == nil {
		return 0, false
	}
	port, err := strconv.Atoi(string(m[1]))
	if err != nil || port <= 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

// URL formats the local address of a server on port.
func URL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}
