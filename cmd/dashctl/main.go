package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GregMSThompson/dashboard-builder/internal/source"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Inspect business records and dashboard layouts",
		Long:          "dashctl builds field catalogs, renders layouts and checks layout presets against a business record.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			v.SetEnvPrefix("DASHBOARD")
			v.AutomaticEnv()
			level := "warn"
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = "debug"
			}
			log := logger.New(level, logger.NewConsoleHandler)
			cmd.SetContext(logger.ToContext(cmd.Context(), log))
		},
	}

	root.PersistentFlags().String("record", "", "business record file (.json or .yaml); built-in sample when empty")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	_ = v.BindPFlag("record_path", root.PersistentFlags().Lookup("record"))

	root.AddCommand(
		newCatalogCmd(v),
		newRenderCmd(v),
		newLayoutCmd(v),
	)
	return root
}

// loadSource reads the record named by --record or DASHBOARD_RECORD_PATH.
func loadSource(ctx context.Context, v *viper.Viper) (*source.Source, error) {
	return source.New(ctx, v.GetString("record_path"))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
