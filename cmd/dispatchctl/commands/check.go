package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbelx/ibm-hackathon/internal/refdata"
)

func newCheckDataCmd(paths *refdata.Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "check-data",
		Short: "Load and validate the reference data files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := refdata.Load(*paths)
			if err != nil {
				return fmt.Errorf("reference data invalid: %w", err)
			}
			s := refdata.Summarize(refs)
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d zones, %d areas, %d technicians (%d available)\n",
				s.Zones, s.Areas, s.Technicians, s.Available)
			return nil
		},
	}
}
