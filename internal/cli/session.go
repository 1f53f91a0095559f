package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/fsx/internal/config"
	"github.com/vvka-141/fsx/internal/logging"
	"github.com/vvka-141/fsx/internal/tui"
	"github.com/vvka-141/fsx/internal/ui"
	"github.com/vvka-141/fsx/pkg/fsx"
	"github.com/vvka-141/fsx/pkg/fsx/osfs"
)

// ConfigEnv names a config file used when --config is not given.
const ConfigEnv = "FSX_CONFIG"

// newFilesystem builds the filesystem every command operates on.
var newFilesystem = func(opts fsx.Options) fsx.Filesystem {
	return osfs.New(opts)
}

// approverFor returns the approver guarding destructive steps, or nil when
// no confirmation applies (non-interactive without --force).
var approverFor = func(force, verbose bool) fsx.Approver {
	switch {
	case force:
		return ui.NewForcedApprover(verbose)
	case tui.IsInteractive():
		return ui.NewInteractiveApprover(verbose)
	default:
		return nil
	}
}

// session carries what a command needs once flags and config are resolved.
type session struct {
	cfg     *config.Config
	fs      fsx.Filesystem
	logger  fsx.Logger
	verbose bool
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	verbose := getVerboseFlag(cmd) || cfg.Verbose
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), verbose)

	return &session{
		cfg:     cfg,
		fs:      newFilesystem(fsx.Options{Logger: logger}),
		logger:  logger,
		verbose: verbose,
	}, nil
}

// loadConfig resolves the configuration: .env first, then --config,
// $FSX_CONFIG, or ./fsx.yaml. Only the implicit ./fsx.yaml may be absent.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to load .env: %v", fsx.ErrInvalidConfig, err)
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}

	if path == "" {
		cfg, err := config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.Default(), nil
		}
		return cfg, err
	}

	cfg, err := config.LoadFile(path)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: config file %s not found", fsx.ErrInvalidConfig, path)
	}
	return cfg, err
}

// tracked returns a filesystem that also reports every mutating step to step.
func (s *session) tracked(step func(string)) fsx.Filesystem {
	return newFilesystem(fsx.Options{Logger: progressLogger{Logger: s.logger, step: step}})
}

// progressLogger forwards verbose engine traces to a progress callback.
type progressLogger struct {
	fsx.Logger
	step func(string)
}

func (l progressLogger) Verbose(format string, args ...interface{}) {
	l.step(fmt.Sprintf(format, args...))
	l.Logger.Verbose(format, args...)
}

// confirm asks for approval to apply action to target when an approver applies.
func (s *session) confirm(ctx context.Context, force bool, action, target string) error {
	approver := approverFor(force, s.verbose)
	if approver == nil {
		return nil
	}
	return ui.Confirm(ctx, approver, action, target)
}

// occupied reports whether p exists in any form, dangling symlinks included.
func (s *session) occupied(p string) bool {
	return s.fs.Exists(p) || s.fs.IsSymLink(p)
}

// success prints a styled status line to stderr.
func success(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintln(cmd.ErrOrStderr(), tui.SuccessStyle.Render(tui.SymbolCheck+" "+fmt.Sprintf(format, args...)))
}
