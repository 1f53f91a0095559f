package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/fsx/internal/checksum"
	"github.com/vvka-141/fsx/internal/files/scanner"
	"github.com/vvka-141/fsx/internal/tui"
	"github.com/vvka-141/fsx/pkg/fsx"
)

var lsFlags struct {
	globs []string
}

var findFlags struct {
	checksums bool
}

var lsCmd = &cobra.Command{
	Use:   "ls <dir>",
	Short: "List the entries of a directory",
	Long: `List the immediate entries of a directory in byte-wise order, never
including '.' or '..'. Directories end with '/', symlinks with '@' and
executable files with '*'.

--glob keeps only names matching a pattern; repeat it to keep several.`,
	Args:              requireArgs("./src --glob '*.go'", "dir"),
	ValidArgsFunction: completePaths(1, true),
	RunE:              runLs,
}

var catCmd = &cobra.Command{
	Use:               "cat <file>",
	Short:             "Print the content of a file",
	Args:              requireArgs("./notes.txt", "file"),
	ValidArgsFunction: completePaths(1, false),
	RunE:              runCat,
}

var findCmd = &cobra.Command{
	Use:   "find <root> [pattern...]",
	Short: "Recursively find files matching glob patterns",
	Long: `Recursively find the files below root whose path relative to root
matches one of the patterns. Patterns use doublestar syntax: '*' stays within
one directory, '**' crosses directories, '{a,b}' lists alternatives.
Without patterns every file is printed.

Symlinked directories are not descended.`,
	Args:              requireAtLeast("./src '**/*.go'", "root"),
	ValidArgsFunction: completePaths(1, true),
	RunE:              runFind,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(findCmd)

	lsCmd.Flags().StringSliceVar(&lsFlags.globs, "glob", nil, "Only list names matching this pattern (repeatable)")
	findCmd.Flags().BoolVar(&findFlags.checksums, "checksum", false, "Print SHA-256 and size before each path")
}

func runLs(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	dir := args[0]

	names, err := s.fs.ListDirectory(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		if !scanner.Match(name, lsFlags.globs) {
			continue
		}
		fmt.Fprintln(out, tui.RenderEntry(name, s.entryKind(fsx.Join(dir, name))))
	}
	return nil
}

func (s *session) entryKind(path string) tui.EntryKind {
	switch {
	case s.fs.IsSymLink(path):
		return tui.EntrySymlink
	case s.fs.IsDirectory(path):
		return tui.EntryDirectory
	case s.fs.IsFile(path) && s.fs.IsExecutable(path):
		return tui.EntryExecutable
	default:
		return tui.EntryFile
	}
}

func runCat(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	data, err := s.fs.ReadFile(args[0])
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runFind(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	root, patterns := args[0], args[1:]

	result, err := scanner.NewScannerWithFS(checksum.New(), s.fs).Scan(root, patterns...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range result.Files {
		if findFlags.checksums {
			fmt.Fprintf(out, "%s  %8d  %s\n", f.Checksum, f.SizeBytes, f.Path)
			continue
		}
		fmt.Fprintln(out, f.Path)
	}
	s.logger.Verbose("found %d file(s) under %s", len(result.Files), root)
	return nil
}
