package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vvka-141/fsx/internal/files/filesystem"
	"github.com/vvka-141/fsx/internal/tui"
	"github.com/vvka-141/fsx/pkg/fsx"
)

// stubApprover records every request and answers with approve.
type stubApprover struct {
	approve bool
	calls   []string
}

func (a *stubApprover) RequestApproval(ctx context.Context, action, target string) (bool, error) {
	a.calls = append(a.calls, action+" "+target)
	return a.approve, nil
}

// cliEnv runs commands against an in-memory filesystem from an empty
// working directory.
type cliEnv struct {
	t        *testing.T
	backend  *filesystem.MemoryBackend
	approver *stubApprover
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(tui.NonInteractiveEnv, "1")
	t.Setenv(ConfigEnv, "")
	os.Unsetenv(ConfigEnv)

	env := &cliEnv{
		t:        t,
		backend:  filesystem.NewMemoryBackend(),
		approver: &stubApprover{approve: true},
	}

	origFS, origApprover := newFilesystem, approverFor
	newFilesystem = func(opts fsx.Options) fsx.Filesystem {
		return filesystem.New(env.backend, opts)
	}
	approverFor = func(force, verbose bool) fsx.Approver {
		return env.approver
	}
	t.Cleanup(func() {
		newFilesystem, approverFor = origFS, origApprover
	})

	return env
}

// run executes the root command with args and returns stdout and stderr.
func (e *cliEnv) run(stdin string, args ...string) (string, string, error) {
	e.t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (e *cliEnv) read(path string) string {
	e.t.Helper()
	data, err := e.backend.ReadFile(path)
	if err != nil {
		e.t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// resetFlags restores every flag of cmd and its children to its default,
// so package-level flag variables do not leak between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
