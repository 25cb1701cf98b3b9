package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vcrobe/nojs-views/config"
	"github.com/vcrobe/nojs-views/transpile"
)

// NewRootCmd creates the nojs-views command.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Compile annotated HTML pages into React components",
		Long: `nojs-views reads the HTML pages of an input directory and writes one React
component per page and per wfr-c annotated region, plus the routes, index,
helpers and layout shells needed to assemble them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	flags := root.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default ./nojs-views.{yaml,toml,json})")
	flags.StringP("input", "i", ".", "directory containing the HTML pages")
	flags.StringP("output", "o", "build", "output root directory")
	flags.Bool("verbose", false, "log every artifact written")
	for _, name := range []string{"input", "output", "verbose"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	return root
}

func run(cmd *cobra.Command, cfg config.Config) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: config.AppName,
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Starting compilation...\nSource directory: %s\n", cfg.Input)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	written, err := transpile.Run(ctx, afero.NewOsFs(), cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🎉 Compilation completed successfully! Wrote %d files to %s\n", len(written), cfg.Output)
	return nil
}
