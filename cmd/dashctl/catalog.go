package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GregMSThompson/dashboard-builder/internal/catalog"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

func newCatalogCmd(v *viper.Viper) *cobra.Command {
	var (
		kind    string
		search  string
		grouped bool
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the field catalog of a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(cmd.Context(), v)
			if err != nil {
				return err
			}
			fields := src.Snapshot().Fields
			if kind != "" {
				fields = catalog.FilterFor(fields, models.WidgetKind(kind))
			}
			fields = catalog.Search(fields, search)
			if grouped {
				return writeJSON(cmd.OutOrStdout(), catalog.GroupByCategory(fields))
			}
			return writeJSON(cmd.OutOrStdout(), fields)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only fields this widget kind can bind")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive label filter")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "group fields by top-level category")
	return cmd
}
