package cli

import (
	"errors"
	"fmt"
	"strings"

	"alcyxob/workout-tracker/internal/search"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one library exercise",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		exitErr("load catalog", err)
	}
	entry, ok := search.NewEngine(cat.Entries).Get(args[0])
	if !ok {
		exitErr("show", errors.New("no exercise with id "+args[0]))
	}

	if formatFlag != "text" {
		printJSON(cmd.OutOrStdout(), entry)
		return
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%s)\n", search.DisplayName(entry.Name), entry.ID)
	fmt.Fprintf(w, "Body parts: %s\n", strings.Join(entry.BodyParts, ", "))
	fmt.Fprintf(w, "Target: %s\n", strings.Join(entry.TargetMuscles, ", "))
	if len(entry.SecondaryMuscles) > 0 {
		fmt.Fprintf(w, "Secondary: %s\n", strings.Join(entry.SecondaryMuscles, ", "))
	}
	fmt.Fprintf(w, "Equipment: %s\n", strings.Join(entry.Equipments, ", "))
	for i, step := range entry.Instructions {
		fmt.Fprintf(w, "%d. %s\n", i+1, step)
	}
}
