// Package commands holds the dispatchctl subcommands. They run the decision
// pipeline offline against reference data files, without a server.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/pbelx/ibm-hackathon/internal/refdata"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var paths refdata.Paths

	root := &cobra.Command{
		Use:          "dispatchctl",
		Short:        "Offline tools for the dispatch pipeline",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&paths.Territory, "territory", "", "zone registry file (YAML or JSON); embedded Entebbe data when empty")
	pf.StringVar(&paths.Roster, "roster", "", "technician roster file")
	pf.StringVar(&paths.Locale, "locale", "", "locale file")

	root.AddCommand(newResolveCmd(&paths))
	root.AddCommand(newCheckDataCmd(&paths))
	return root
}
