package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdullathedruid/cdeck/internal/ui"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the key reference",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.HelpText())
	},
}
