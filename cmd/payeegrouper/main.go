// Command payeegrouper previews how a statement's raw payee strings resolve
// into canonical payee groups before an import is committed.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "payeegrouper",
		Short: "Resolve raw statement payees into canonical payee groups",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
