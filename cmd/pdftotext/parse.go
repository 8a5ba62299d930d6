// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftotext/internal/convert"
	"github.com/pdiddy/pdftotext/internal/logging"
	"github.com/pdiddy/pdftotext/internal/match"
	"github.com/pdiddy/pdftotext/internal/ocr"
	"github.com/pdiddy/pdftotext/internal/progress"
	"github.com/pdiddy/pdftotext/internal/raster"
	"github.com/pdiddy/pdftotext/pkg/types"
)

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, logging.Options{
		Verbose: cfg.Verbose,
		JSON:    viper.GetBool("log-json"),
	})

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &convert.Runner{
		Config:   cfg,
		Out:      cmd.OutOrStdout(),
		Progress: progress.NewFactory(cfg.Progress, os.Stderr),
		Log:      log,
	}
	if !cfg.MatchOnly {
		engine, err := ocr.New(cfg.Parse.Backend, ocr.Options{
			Language: cfg.Parse.Language,
			DPI:      cfg.Parse.DPI,
		})
		if err != nil {
			return err
		}
		runner.Rasterizer = raster.NewFitzRasterizer()
		runner.Engine = engine
		log.Debug().Str("backend", engine.Name()).Str("input", cfg.InputPath).Msg("starting parse")
	}

	rep, runErr := runner.Run(ctx)

	if path := viper.GetString("report"); path != "" {
		if err := convert.WriteReport(path, rep); err != nil {
			log.Warn().Err(err).Msg("could not write run report")
		}
	}

	if runErr != nil {
		return runErr
	}
	if rep.HasFailures() {
		return fmt.Errorf("%d document(s) failed", rep.Failed)
	}
	return nil
}

// resolveConfig builds the run configuration from flags, environment, and
// the config file, in viper's precedence order.
func resolveConfig(args []string) (types.Config, error) {
	cfg := types.DefaultConfig()
	if len(args) > 0 {
		cfg.InputPath = args[0]
	}
	cfg.OutputDir = viper.GetString("output-directory")
	cfg.MatchOnly = viper.GetBool("match-only")
	cfg.Progress = viper.GetBool("progress")
	cfg.Verbose = viper.GetBool("verbose")

	cfg.Parse.MaxSizeKB = viper.GetFloat64("max-size")
	cfg.Parse.Reprocess = viper.GetBool("reprocess")
	cfg.Parse.KeepConverted = viper.GetBool("keep-converted")
	cfg.Parse.DPI = viper.GetFloat64("dpi")
	cfg.Parse.Language = viper.GetString("lang")
	cfg.Parse.Backend = types.OCRBackend(viper.GetString("ocr-backend"))
	cfg.Parse.ImageFormat = types.ImageFormat(viper.GetString("image-format"))

	cfg.Match.Strategy = types.MatchStrategy(viper.GetString("match-strategy"))
	cfg.Match.Threshold = viper.GetInt("similarity-threshold")

	var fromFile []string
	if path := viper.GetString("keywords-file"); path != "" {
		loaded, err := match.LoadKeywords(path)
		if err != nil {
			return cfg, err
		}
		fromFile = loaded
	}
	cfg.Match.Keywords = match.MergeKeywords(viper.GetStringSlice("keywords"), fromFile)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
