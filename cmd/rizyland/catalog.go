package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/nikidav23/rizy-land-mini-a/internal/models"
	"github.com/nikidav23/rizy-land-mini-a/internal/store"
)

// catalogDump is the document printed by the catalog command.
type catalogDump struct {
	Categories   []models.Category    `json:"categories"`
	Books        []models.Book        `json:"books"`
	AudioBooks   []models.AudioBook   `json:"audioBooks"`
	ShopProducts []models.ShopProduct `json:"shopProducts"`
}

func newCatalogCmd() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the starter catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCatalog(cmd.OutOrStdout(), !compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print on a single line")
	return cmd
}

func writeCatalog(w io.Writer, indent bool) error {
	db := store.NewDB()
	store.Seed(db)

	dump := catalogDump{
		Categories:   store.NewCategoryStore(db).List(),
		Books:        store.NewBookStore(db).List(models.CatalogFilter{}),
		AudioBooks:   store.NewAudioBookStore(db).List(models.CatalogFilter{}),
		ShopProducts: store.NewProductStore(db).List(),
	}

	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(dump)
}
