package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GregMSThompson/dashboard-builder/internal/layout"
	"github.com/GregMSThompson/dashboard-builder/internal/render"
)

func newRenderCmd(v *viper.Viper) *cobra.Command {
	var layoutPath string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every widget of a layout against a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(cmd.Context(), v)
			if err != nil {
				return err
			}
			c, err := presetOrDefault(layoutPath)
			if err != nil {
				return err
			}
			snap := src.Snapshot()
			return writeJSON(cmd.OutOrStdout(), render.RenderAll(c.Widgets(), snap.Record, render.WithCatalog(snap.Fields)))
		},
	}
	cmd.Flags().StringVar(&layoutPath, "layout", "", "layout preset (.toml); built-in default when empty")
	return cmd
}

func presetOrDefault(path string) (layout.Collection, error) {
	if path == "" {
		return layout.Default(), nil
	}
	p, err := layout.LoadPreset(path)
	if err != nil {
		return layout.Collection{}, err
	}
	return p.Collection()
}
