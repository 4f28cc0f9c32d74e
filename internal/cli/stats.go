package cli

import (
	"cmp"
	"slices"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

type facetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type catalogStats struct {
	Source      string       `json:"source"`
	Entries     int          `json:"entries"`
	BodyParts   []facetCount `json:"bodyParts"`
	Equipments  []facetCount `json:"equipments"`
	WithMedia   int          `json:"withMedia"`
	WithoutTips int          `json:"withoutTips"`
}

// countFacet tallies values across entries, most common first.
func countFacet(entries []domain.CatalogEntry, values func(*domain.CatalogEntry) []string) []facetCount {
	counts := map[string]int{}
	for i := range entries {
		for _, v := range values(&entries[i]) {
			counts[v]++
		}
	}
	out := make([]facetCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, facetCount{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b facetCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

func computeStats(source string, cat *domain.Catalog) catalogStats {
	stats := catalogStats{
		Source:     source,
		Entries:    len(cat.Entries),
		BodyParts:  countFacet(cat.Entries, func(e *domain.CatalogEntry) []string { return e.BodyParts }),
		Equipments: countFacet(cat.Entries, func(e *domain.CatalogEntry) []string { return e.Equipments }),
	}
	for i := range cat.Entries {
		if cat.Entries[i].HeroAsset != "" || len(cat.Entries[i].MediaAssets) > 0 {
			stats.WithMedia++
		}
		if len(cat.Entries[i].Tips) == 0 {
			stats.WithoutTips++
		}
	}
	return stats
}

func runStats(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		exitErr("load catalog", err)
	}
	printJSON(cmd.OutOrStdout(), computeStats(getCatalogPath(), cat))
}
