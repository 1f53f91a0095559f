package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/fsx/internal/scaffold"
)

var initFlags struct {
	overwrite bool
	force     bool
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter fsx.yaml",
	Long: `Write a commented fsx.yaml into dir (default: the working directory).
The modes in the file are the ones currently in effect, so running init
with --config copies an existing configuration.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePaths(1, true),
	RunE:              runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initFlags.overwrite, "overwrite", false, "Replace an existing fsx.yaml")
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Skip the confirmation prompt after a countdown")
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if initFlags.overwrite && s.occupied(scaffold.ConfigPath(dir)) {
		if err := s.confirm(cmd.Context(), initFlags.force, "overwrite", scaffold.ConfigPath(dir)); err != nil {
			return err
		}
	}

	path, err := scaffold.NewScaffolder(s.fs, s.logger).WriteConfig(dir, s.cfg, initFlags.overwrite)
	if err != nil {
		return err
	}
	success(cmd, "created %s", path)
	return nil
}
