package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/vvka-141/fsx/internal/config"
	"github.com/vvka-141/fsx/internal/logging"
	"github.com/vvka-141/fsx/pkg/fsx"
)

//go:embed templates/fsx.yaml
var templatesFS embed.FS

// Scaffolder writes a starter fsx.yaml through an fsx.Filesystem.
type Scaffolder struct {
	fsys   fsx.Filesystem
	logger fsx.Logger
}

// NewScaffolder creates a new Scaffolder instance. A nil logger discards output.
func NewScaffolder(fsys fsx.Filesystem, logger fsx.Logger) *Scaffolder {
	if fsys == nil {
		panic("filesystem cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scaffolder{fsys: fsys, logger: logger}
}

// ConfigPath returns where WriteConfig places the config file for dir.
func ConfigPath(dir string) string {
	if dir == "" || dir == "." {
		return config.ConfigFileName
	}
	return strings.TrimRight(dir, `/\`) + "/" + config.ConfigFileName
}

// WriteConfig renders the config template with the modes of cfg and writes
// it into dir. An existing file is replaced only when overwrite is true; the
// error then matches fsx.ErrAlreadyExists.
func (s *Scaffolder) WriteConfig(dir string, cfg *config.Config, overwrite bool) (string, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	content, err := Render(cfg)
	if err != nil {
		return "", err
	}

	path := ConfigPath(dir)
	s.logger.Verbose("Creating file: %s", path)
	if _, err := s.fsys.CreateFile(path, []byte(content), overwrite); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Render returns the config template with the template variables replaced.
func Render(cfg *config.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	content, err := fs.ReadFile(templatesFS, "templates/fsx.yaml")
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return processTemplate(string(content), cfg), nil
}

func processTemplate(content string, cfg *config.Config) string {
	content = strings.ReplaceAll(content, "{{DIR_MODE}}", fmt.Sprintf("%04o", uint32(cfg.DirMode)))
	content = strings.ReplaceAll(content, "{{FILE_MODE}}", fmt.Sprintf("%04o", uint32(cfg.FileMode)))
	return content
}
