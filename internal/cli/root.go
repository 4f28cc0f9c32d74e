// Package cli implements the offline exercise library commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"alcyxob/workout-tracker/internal/catalog"
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/logger"

	"github.com/spf13/cobra"
)

var (
	catalogPath  string
	metadataPath string
	facetsDir    string
	formatFlag   string
	verbose      bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "library",
	Short: "Query the bundled exercise library",
	Long:  "Search and inspect the exercise library from its JSON assets, without a database or server.",
	// Errors are printed by exitErr; usage is only useful for flag mistakes.
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Catalog entries file (default: $CATALOG_PATH or assets/exercises.json)")
	RootCmd.PersistentFlags().StringVar(&metadataPath, "metadata", "", "Optional metadata document")
	RootCmd.PersistentFlags().StringVar(&facetsDir, "facets-dir", "", "Optional directory holding bodyparts.json, equipments.json and muscles.json")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log catalog loading to stderr")
}

func getCatalogPath() string {
	if catalogPath != "" {
		return catalogPath
	}
	if env := os.Getenv("CATALOG_PATH"); env != "" {
		return env
	}
	return "assets/exercises.json"
}

func newLogger() *logger.Logger {
	if !verbose {
		return logger.Nop()
	}
	log, err := logger.New("development")
	if err != nil {
		return logger.Nop()
	}
	return log
}

func loadCatalog(cmd *cobra.Command) (*domain.Catalog, error) {
	log := newLogger()
	defer log.Sync()
	src := catalog.FileSource{
		EntriesPath:  getCatalogPath(),
		MetadataPath: metadataPath,
		FacetsDir:    facetsDir,
	}
	return catalog.Load(cmd.Context(), src, log)
}

func printJSON(w io.Writer, v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
