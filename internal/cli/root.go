package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fsx",
	Short: "Uniform file and directory operations",
	Long: `fsx exposes a filesystem abstraction layer on the command line:
existence and permission checks, listing, reading, creating, deleting,
renaming and copying, all reporting failures through one error contract.

Defaults come from fsx.yaml in the working directory, the file named by
--config, or the FSX_CONFIG environment variable. A .env file in the working
directory is loaded first.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  12 - User denied approval
  20 - I/O failure
  21 - Not a directory
  22 - Not a file
  23 - Target already exists
  24 - Path conflict
  25 - Directory not empty`,
	SilenceUsage: true,
}

// Execute runs the root command. Ctrl+C cancels pending approvals and spinners.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for fsx")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default ./fsx.yaml, or $FSX_CONFIG)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
