package cli

import (
	"fmt"
	"io"
	"strings"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/search"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search the library",
		Long:  "Search by free text and facets. Facet flags may repeat and match any of their values.",
		Run:   runSearch,
	}

	cmd.Flags().StringP("sort", "s", "relevance", "Sort: relevance, name, equipment or body_part")
	cmd.Flags().StringSlice("body-part", nil, "Body part facet")
	cmd.Flags().StringSlice("equipment", nil, "Equipment facet")
	cmd.Flags().StringSlice("primary-muscle", nil, "Target muscle facet")
	cmd.Flags().StringSlice("secondary-muscle", nil, "Secondary muscle facet")
	cmd.Flags().StringSlice("difficulty", nil, "Difficulty facet")
	cmd.Flags().StringSlice("mechanic", nil, "Mechanic facet")
	cmd.Flags().IntP("limit", "l", 20, "Maximum results (0 for all)")

	RootCmd.AddCommand(cmd)
}

func searchFilters(cmd *cobra.Command) domain.SearchFilters {
	get := func(name string) map[string]struct{} {
		values, _ := cmd.Flags().GetStringSlice(name)
		return domain.NewFilterSet(values...)
	}
	return domain.SearchFilters{
		BodyParts:        get("body-part"),
		Equipments:       get("equipment"),
		PrimaryMuscles:   get("primary-muscle"),
		SecondaryMuscles: get("secondary-muscle"),
		Difficulty:       get("difficulty"),
		Mechanics:        get("mechanic"),
	}
}

// searchOutput is the JSON shape of the search command.
type searchOutput struct {
	Total       int                   `json:"total"`
	Exercises   []domain.CatalogEntry `json:"exercises"`
	Suggestions []string              `json:"suggestions"`
}

func runSearch(cmd *cobra.Command, args []string) {
	sortFlag, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	sortBy, err := search.ParseSortOption(sortFlag)
	if err != nil {
		exitErr("sort", err)
	}
	cat, err := loadCatalog(cmd)
	if err != nil {
		exitErr("load catalog", err)
	}

	result := search.NewEngine(cat.Entries).Search(strings.Join(args, " "), searchFilters(cmd), sortBy)
	out := searchOutput{
		Total:       len(result.Exercises),
		Exercises:   result.Exercises,
		Suggestions: result.Suggestions,
	}
	if limit > 0 && len(out.Exercises) > limit {
		out.Exercises = out.Exercises[:limit]
	}

	if formatFlag == "text" {
		printSearchText(cmd.OutOrStdout(), out)
		return
	}
	printJSON(cmd.OutOrStdout(), out)
}

func printSearchText(w io.Writer, out searchOutput) {
	if out.Total == 0 {
		fmt.Fprintln(w, "No exercises found.")
		if len(out.Suggestions) > 0 {
			fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(out.Suggestions, ", "))
		}
		return
	}
	for _, e := range out.Exercises {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, search.DisplayName(e.Name), e.FirstBodyPart(), e.FirstEquipment())
	}
	if len(out.Exercises) < out.Total {
		fmt.Fprintf(w, "(%d of %d shown)\n", len(out.Exercises), out.Total)
	}
}
