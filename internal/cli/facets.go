package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "facets",
		Short: "List the facet values available for filtering",
		Run:   runFacets,
	}

	RootCmd.AddCommand(cmd)
}

func runFacets(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		exitErr("load catalog", err)
	}

	meta := cat.Metadata
	if formatFlag != "text" {
		printJSON(cmd.OutOrStdout(), meta)
		return
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "body parts:   %s\n", strings.Join(meta.BodyParts, ", "))
	fmt.Fprintf(w, "equipments:   %s\n", strings.Join(meta.Equipments, ", "))
	fmt.Fprintf(w, "muscles:      %s\n", strings.Join(meta.Muscles, ", "))
	fmt.Fprintf(w, "difficulties: %s\n", strings.Join(meta.Difficulties, ", "))
	fmt.Fprintf(w, "mechanics:    %s\n", strings.Join(meta.Mechanics, ", "))
}
