package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/fsx/internal/tui"
)

// errPathNotFound is returned by stat when the path does not exist.
var errPathNotFound = errors.New("no such file or directory")

var statFlags struct {
	quiet bool
}

var statCmd = &cobra.Command{
	Use:     "stat <path>",
	Aliases: []string{"exists"},
	Short:   "Show existence, kind and access predicates of a path",
	Long: `Show every predicate of a path: exists, file, directory, symlink,
readable, writable, executable.

The command fails when the path does not exist, so 'fsx exists -q <path>'
works as a shell test.`,
	Args:              requireArgs("./data/report.csv", "path"),
	ValidArgsFunction: completePaths(1, false),
	RunE:              runStat,
}

var parentCmd = &cobra.Command{
	Use:   "parent <path>",
	Short: "Print the parent directory derived from a path",
	Long: `Print the parent directory of a path using string rules only; the
filesystem is not consulted. Trailing '.', '/' and '\' characters are trimmed
from the result, so 'orphan' and './child' have an empty parent.`,
	Args: requireArgs("/srv/data/file.txt", "path"),
	RunE: runParent,
}

func init() {
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(parentCmd)

	statCmd.Flags().BoolVarP(&statFlags.quiet, "quiet", "q", false, "Print nothing, only set the exit code")
}

func runStat(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	predicates := []struct {
		label string
		value bool
	}{
		{"exists", s.fs.Exists(path)},
		{"file", s.fs.IsFile(path)},
		{"directory", s.fs.IsDirectory(path)},
		{"symlink", s.fs.IsSymLink(path)},
		{"readable", s.fs.IsReadable(path)},
		{"writable", s.fs.IsWritable(path)},
		{"executable", s.fs.IsExecutable(path)},
	}

	if !statFlags.quiet {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.TitleStyle.Render(path))
		for _, p := range predicates {
			fmt.Fprintf(out, "  %s %s\n", tui.LabelStyle.Render(fmt.Sprintf("%-10s", p.label)), tui.RenderBool(p.value))
		}
	}

	if !predicates[0].value {
		return fmt.Errorf("%s: %w", path, errPathNotFound)
	}
	return nil
}

func runParent(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.fs.GetParentDirectory(args[0]))
	return nil
}
