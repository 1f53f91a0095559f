package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/fsx/internal/tui/components"
	"github.com/vvka-141/fsx/pkg/fsx"
)

// completePaths returns a completion function offering entries of the
// filesystem for the first maxArgs positional arguments.
func completePaths(maxArgs int, dirsOnly bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= maxArgs {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		matches := components.NewPathCompleter(newFilesystem(fsx.Options{}), dirsOnly).Complete(toComplete)
		directive := cobra.ShellCompDirectiveNoFileComp
		for _, m := range matches {
			if strings.HasSuffix(m, "/") {
				// let the shell keep descending into a completed directory
				directive |= cobra.ShellCompDirectiveNoSpace
				break
			}
		}
		return matches, directive
	}
}

// completeModes provides shell completion for common permission modes.
func completeModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, mode := range []string{"0644", "0600", "0755", "0700", "0750", "0640"} {
		if strings.HasPrefix(mode, toComplete) {
			matches = append(matches, mode)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
