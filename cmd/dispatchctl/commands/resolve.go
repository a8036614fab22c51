package commands

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbelx/ibm-hackathon/internal/dispatch"
	"github.com/pbelx/ibm-hackathon/internal/refdata"
)

func newResolveCmd(paths *refdata.Paths) *cobra.Command {
	var keywords, entities []string

	cmd := &cobra.Command{
		Use:   "resolve <message>",
		Short: "Run the full pipeline on one message and print the response as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := refdata.Load(*paths)
			if err != nil {
				return err
			}
			sig := dispatch.FuseSignals(strings.Join(args, " "), keywords, entities)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dispatch.Resolve(refs, sig))
		},
	}
	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "extracted keyword (repeatable)")
	cmd.Flags().StringSliceVarP(&entities, "entity", "e", nil, "extracted entity (repeatable)")
	return cmd
}
