package cli

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"localgame-server/di"
	"localgame-server/discovery"
	"localgame-server/models"
	services "localgame-server/service"
	"localgame-server/util"
)

// exploreFlags mirror the HTTP query args so both surfaces parse criteria the same way.
type exploreFlags struct {
	query    string
	sport    string
	liveOnly bool
	maxKm    string
	sort     string
	selected string
}

func (f *exploreFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "match venue name or area (case-insensitive)")
	cmd.Flags().StringVar(&f.sport, "sport", "", "sport filter (all|tennis|ping_pong)")
	cmd.Flags().BoolVar(&f.liveOnly, "live", false, "only venues that are live now")
	cmd.Flags().StringVar(&f.maxKm, "max-km", "", "maximum distance in km (default: unlimited)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort key (catalog|distance|vibe|players|relevance)")
	cmd.Flags().StringVar(&f.selected, "selected", "", "venue id to keep focused")
}

func (f *exploreFlags) parse() (models.FilterCriteria, discovery.SortKey, error) {
	vals := url.Values{}
	if f.query != "" {
		vals.Set(models.QueryArgText, f.query)
	}
	if f.sport != "" {
		vals.Set(models.QueryArgSport, f.sport)
	}
	if f.liveOnly {
		vals.Set(models.QueryArgLiveOnly, strconv.FormatBool(f.liveOnly))
	}
	if f.maxKm != "" {
		vals.Set(models.QueryArgMaxKm, f.maxKm)
	}
	criteria, err := models.CriteriaFromValues(vals)
	if err != nil {
		return criteria, "", err
	}
	key, err := discovery.ParseSortKey(f.sort)
	if err != nil {
		return criteria, "", err
	}
	return criteria, key, nil
}

func newExploreCmd() *cobra.Command {
	var flags exploreFlags

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Filter and rank venues",
		Long:  "Run an explore query against the configured catalog and print the ordered results.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runExplore(cmd, &flags)
			if err != nil {
				return err
			}
			return printExploreResult(cmd.OutOrStdout(), res)
		},
	}
	flags.register(cmd)

	return cmd
}

func runExplore(cmd *cobra.Command, flags *exploreFlags) (services.ExploreResult, error) {
	criteria, key, err := flags.parse()
	if err != nil {
		return services.ExploreResult{}, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return services.ExploreResult{}, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return services.ExploreResult{}, err
	}
	defer syncLogger(logger)

	container, err := di.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return services.ExploreResult{}, err
	}
	defer container.Close()

	return container.ExploreService.Explore(criteria, key, flags.selected)
}

func printExploreResult(w io.Writer, res services.ExploreResult) error {
	if isJSON() {
		return printJSON(w, res)
	}
	selectedID := ""
	if res.Selected != nil {
		selectedID = res.Selected.ID
	}
	fmt.Fprintf(w, "%d of %d venues\n", res.Count, res.Total)
	util.PrintVenueTable(w, res.Venues, selectedID)
	return nil
}
