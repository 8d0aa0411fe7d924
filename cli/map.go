package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"localgame-server/util"
)

func newMapCmd() *cobra.Command {
	var flags exploreFlags
	var out string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render the venue map to HTML",
		Long:  "Run an explore query and write the matching venues as a schematic map chart.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runExplore(cmd, &flags)
			if err != nil {
				return err
			}
			selectedID := ""
			if res.Selected != nil {
				selectedID = res.Selected.ID
			}
			if err := util.PlotVenueMap(out, res.Venues, selectedID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d venues to %s\n", res.Count, out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "venues_map.html", "HTML file to write")

	return cmd
}
