package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/fsx/internal/checksum"
	"github.com/vvka-141/fsx/internal/files/scanner"
	"github.com/vvka-141/fsx/internal/tui"
	"github.com/vvka-141/fsx/pkg/fsx"
)

var (
	errChmodFailed  = errors.New("permission change failed")
	errVerifyFailed = errors.New("copy verification failed")
)

var mkdirFlags struct {
	mode        string
	noRecursive bool
}

var writeFlags struct {
	data      string
	overwrite bool
	force     bool
}

var rmFlags struct {
	recursive bool
	force     bool
}

var mvFlags struct {
	overwrite bool
	force     bool
}

var cpFlags struct {
	overwrite bool
	force     bool
	verify    bool
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory and its missing parents",
	Long: `Create a directory. Missing parents are created too unless
--no-recursive is given. An existing directory is left untouched; an
existing non-directory at the path is a path conflict.`,
	Args:              requireArgs("./build/out --mode 0750", "path"),
	ValidArgsFunction: completePaths(1, true),
	RunE:              runMkdir,
}

var writeCmd = &cobra.Command{
	Use:   "write <path>",
	Short: "Create a file from --data or stdin",
	Long: `Create a file with the given content, creating missing parent
directories. Content comes from --data, or from stdin when --data is not given.

An existing target is only replaced with --overwrite. Interactive sessions
ask for confirmation first; --force replaces the prompt with a countdown.`,
	Args:              requireArgs("./notes.txt --data 'hello'", "path"),
	ValidArgsFunction: completePaths(1, false),
	RunE:              runWrite,
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file, symlink or directory",
	Long: `Delete a path. A directory must be empty unless -r is given, which
removes its content depth-first. Symlinks are removed themselves, never their
target. Deleting a path that does not exist succeeds.

A failure during a recursive delete stops it; entries already removed stay
removed.`,
	Args:              requireArgs("-r ./build", "path"),
	ValidArgsFunction: completePaths(1, false),
	RunE:              runRm,
}

var mvCmd = &cobra.Command{
	Use:               "mv <src> <dest>",
	Short:             "Rename or move a path",
	Args:              requireArgs("./draft.txt ./final.txt", "src", "dest"),
	ValidArgsFunction: completePaths(2, false),
	RunE:              runMv,
}

var cpCmd = &cobra.Command{
	Use:   "cp <src> <dest>",
	Short: "Copy a file or a directory tree",
	Long: `Copy a file or, recursively, a directory. A file copied onto an
existing directory lands inside it under its own name. Empty directories in
a copied tree are not reproduced.

--verify compares SHA-256 checksums of source and copy afterwards.`,
	Args:              requireArgs("./src ./backup --verify", "src", "dest"),
	ValidArgsFunction: completePaths(2, false),
	RunE:              runCp,
}

var chmodCmd = &cobra.Command{
	Use:   "chmod <mode> <path>",
	Short: "Change permission bits of a path",
	Args:  requireArgs("0640 ./secret.txt", "mode", "path"),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return completeModes(cmd, args, toComplete)
		}
		return completePaths(2, false)(cmd, args, toComplete)
	},
	RunE: runChmod,
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(cpCmd)
	rootCmd.AddCommand(chmodCmd)

	mkdirCmd.Flags().StringVar(&mkdirFlags.mode, "mode", "", "Permission mode in octal (default from config, 0755)")
	mkdirCmd.Flags().BoolVar(&mkdirFlags.noRecursive, "no-recursive", false, "Fail when the parent directory is missing")
	_ = mkdirCmd.RegisterFlagCompletionFunc("mode", completeModes)

	writeCmd.Flags().StringVar(&writeFlags.data, "data", "", "Content to write (default: read stdin)")
	writeCmd.Flags().BoolVar(&writeFlags.overwrite, "overwrite", false, "Replace an existing target")
	writeCmd.Flags().BoolVar(&writeFlags.force, "force", false, "Skip the confirmation prompt after a countdown")

	rmCmd.Flags().BoolVarP(&rmFlags.recursive, "recursive", "r", false, "Delete directories and their content")
	rmCmd.Flags().BoolVar(&rmFlags.force, "force", false, "Skip the confirmation prompt after a countdown")

	mvCmd.Flags().BoolVar(&mvFlags.overwrite, "overwrite", false, "Replace an existing destination")
	mvCmd.Flags().BoolVar(&mvFlags.force, "force", false, "Skip the confirmation prompt after a countdown")

	cpCmd.Flags().BoolVar(&cpFlags.overwrite, "overwrite", false, "Replace existing files at the destination")
	cpCmd.Flags().BoolVar(&cpFlags.force, "force", false, "Skip the confirmation prompt after a countdown")
	cpCmd.Flags().BoolVar(&cpFlags.verify, "verify", false, "Compare checksums of source and copy")
}

func runMkdir(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	mode := s.cfg.DirMode.FileMode()
	if mkdirFlags.mode != "" {
		if mode, err = parseMode(mkdirFlags.mode); err != nil {
			return err
		}
	}

	if err := s.fs.CreateDirectory(args[0], mode, !mkdirFlags.noRecursive); err != nil {
		return err
	}
	success(cmd, "created %s", args[0])
	return nil
}

func runWrite(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	data := []byte(writeFlags.data)
	if !cmd.Flags().Changed("data") {
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	overwrite := writeFlags.overwrite || s.cfg.Overwrite
	if overwrite && s.occupied(path) {
		if err := s.confirm(cmd.Context(), writeFlags.force, "overwrite", path); err != nil {
			return err
		}
	}

	n, err := s.fs.CreateFile(path, data, overwrite)
	if err != nil {
		return err
	}
	if mode := s.cfg.FileMode.FileMode(); mode != fsx.DefaultFileMode && !s.fs.Chmod(path, mode) {
		s.logger.Error("could not apply file_mode %o to %s", mode, path)
	}
	success(cmd, "wrote %d bytes to %s", n, path)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	isTree := rmFlags.recursive && s.fs.IsDirectory(path) && !s.fs.IsSymLink(path)
	if isTree {
		empty, err := s.fs.IsEmpty(path)
		if err != nil {
			return err
		}
		if !empty {
			if err := s.confirm(cmd.Context(), rmFlags.force, "recursively delete", path); err != nil {
				return err
			}
		}
	}

	err = tui.RunWithSpinner(cmd.Context(), "Deleting "+path, func(step func(string)) (string, error) {
		return "deleted " + path, s.tracked(step).Delete(path, rmFlags.recursive)
	})
	if err != nil {
		return err
	}
	success(cmd, "deleted %s", path)
	return nil
}

func runMv(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	src, dest := args[0], args[1]

	overwrite := mvFlags.overwrite || s.cfg.Overwrite
	if overwrite && s.occupied(dest) {
		if err := s.confirm(cmd.Context(), mvFlags.force, "overwrite", dest); err != nil {
			return err
		}
	}

	if err := s.fs.Rename(src, dest, overwrite); err != nil {
		return err
	}
	success(cmd, "moved %s %s %s", src, tui.SymbolArrowRight, dest)
	return nil
}

func runCp(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	src, dest := args[0], args[1]
	isTree := s.fs.IsDirectory(src)

	target := dest
	if !isTree && s.fs.IsDirectory(dest) {
		target = fsx.Join(dest, filepath.Base(src))
	}

	overwrite := cpFlags.overwrite || s.cfg.Overwrite
	if overwrite && s.occupied(target) {
		if err := s.confirm(cmd.Context(), cpFlags.force, "overwrite", target); err != nil {
			return err
		}
	}

	err = tui.RunWithSpinner(cmd.Context(), "Copying "+src, func(step func(string)) (string, error) {
		return "copied " + src, s.tracked(step).Copy(src, dest, overwrite)
	})
	if err != nil {
		return err
	}

	if cpFlags.verify {
		if isTree {
			err = s.verifyTree(src, target)
		} else {
			err = s.verifyFile(src, target)
		}
		if err != nil {
			return err
		}
	}
	success(cmd, "copied %s %s %s", src, tui.SymbolArrowRight, target)
	return nil
}

func (s *session) verifyFile(src, dest string) error {
	same, err := checksum.SameContent(s.fs, src, dest)
	if err != nil {
		return err
	}
	if !same {
		return fmt.Errorf("%s: %w", dest, errVerifyFailed)
	}
	s.logger.Verbose("verified %s", dest)
	return nil
}

// verifyTree checks that every file under src has an identical copy at the
// same relative path under dest.
func (s *session) verifyTree(src, dest string) error {
	scan := scanner.NewScannerWithFS(checksum.New(), s.fs)

	source, err := scan.Scan(src)
	if err != nil {
		return err
	}
	if len(source.Files) == 0 {
		return nil
	}
	copied, err := scan.Scan(dest)
	if err != nil {
		return err
	}

	sums := make(map[string]string, len(copied.Files))
	for _, f := range copied.Files {
		sums[f.Path] = f.Checksum
	}
	for _, f := range source.Files {
		if sums[f.Path] != f.Checksum {
			return fmt.Errorf("%s: %w", fsx.Join(dest, f.Path), errVerifyFailed)
		}
	}
	s.logger.Verbose("verified %d file(s) under %s", len(source.Files), dest)
	return nil
}

func runChmod(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	mode, err := parseMode(args[0])
	if err != nil {
		return err
	}
	if !s.fs.Chmod(args[1], mode) {
		return fmt.Errorf("chmod %s: %w", args[1], errChmodFailed)
	}
	success(cmd, "mode of %s is now %s", args[1], tui.FormatMode(mode))
	return nil
}

// parseMode parses an octal permission mode such as "0644" or "0o755".
func parseMode(s string) (fs.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0o"), 8, 32)
	if err != nil || v > uint64(fs.ModePerm) {
		return 0, fmt.Errorf("invalid argument %q: mode must be octal between 0000 and 0777", s)
	}
	return fs.FileMode(v), nil
}
