package main

import (
	"fmt"

	"moviedb/internal/logging"
	"moviedb/internal/movie"
	"moviedb/internal/transfer"
	"moviedb/internal/ui"

	"github.com/spf13/cobra"
)

// importCmd bulk-loads a JSON file without the menu
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import movies from a JSON array file",
	Long: `Inserts every object of a JSON array into the catalog, in file order.
Each object needs title, director, genre, year and rating.

An invalid record stops the import; records before it stay in the catalog.
The file defaults to import_path from the config (movies.json).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

// exportCmd writes the catalog to a JSON file
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all movies to a JSON array file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

// listCmd prints the catalog table
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all movies",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runImport(cmd *cobra.Command, args []string) error {
	path := cfg.ImportPath
	if len(args) == 1 {
		path = args[0]
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := transfer.Import(cmd.Context(), st, path, logging.For(logger, logging.CategoryTransfer))
	if err != nil {
		if n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d movies were imported before the failure\n", n)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movies\n", n)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	path := cfg.ExportPath
	if len(args) == 1 {
		path = args[0]
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := transfer.Export(cmd.Context(), st, path, logging.For(logger, logging.CategoryTransfer))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d movies to %s\n", n, path)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	movies, err := st.ListAll(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(movies) == 0 {
		fmt.Fprintln(out, "No movie data")
		return nil
	}

	table := ui.NewTable("", append([]string{"ID"}, movie.Headers...))
	for _, m := range movies {
		table.AddRow(append([]string{fmt.Sprint(m.ID)}, m.Fields()...)...)
	}
	fmt.Fprint(out, table.View(stylesFor(out)))
	return nil
}
