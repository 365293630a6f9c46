package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GregMSThompson/dashboard-builder/internal/catalog"
	"github.com/GregMSThompson/dashboard-builder/internal/layout"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

func newLayoutCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Work with layout presets",
	}
	cmd.AddCommand(newLayoutCheckCmd(v), newLayoutDefaultCmd())
	return cmd
}

func newLayoutCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check <preset.toml>",
		Short: "Validate a preset and its field bindings against a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := layout.LoadPreset(args[0])
			if err != nil {
				return err
			}
			if _, err := p.Collection(); err != nil {
				return err
			}
			src, err := loadSource(cmd.Context(), v)
			if err != nil {
				return err
			}

			fields := src.Snapshot().Fields
			var problems []error
			for _, w := range p.Widgets {
				if err := catalog.CheckBinding(w, fields); err != nil {
					problems = append(problems, fmt.Errorf("%s: %w", w.ID, err))
				}
			}
			if len(problems) > 0 {
				for _, e := range problems {
					fmt.Fprintln(cmd.ErrOrStderr(), "✗", e)
				}
				return errors.Join(problems...)
			}

			logger.FromContext(cmd.Context()).Debug("preset checked", "path", args[0], "widgets", len(p.Widgets))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d widgets OK\n", p.Name, len(p.Widgets))
			return nil
		},
	}
}

func newLayoutDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the built-in default layout as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := layout.MarshalPreset("Business overview", layout.Default())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
