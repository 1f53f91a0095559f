package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// requireArgs validates that exactly the named positional arguments are provided.
// A missing argument produces a message with usage and an example.
func requireArgs(example string, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			missing := make([]string, 0, len(names)-len(args))
			for _, name := range names[len(args):] {
				missing = append(missing, "<"+name+">")
			}
			return fmt.Errorf(`missing required argument: %s

Usage: %s

Example:
  %s %s`, strings.Join(missing, " "), cmd.UseLine(), cmd.CommandPath(), example)
		}
		if len(args) > len(names) {
			return fmt.Errorf("accepts %d arg(s), received %d", len(names), len(args))
		}
		return nil
	}
}

// requireAtLeast validates that the first positional argument is present.
func requireAtLeast(example, name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf(`missing required argument: <%s>

Usage: %s

Example:
  %s %s`, name, cmd.UseLine(), cmd.CommandPath(), example)
		}
		return nil
	}
}
