package cmd

import (
	"context"
	"os"

	"quote-scraper/internal/config"
	"quote-scraper/internal/modules/extractor"
	"quote-scraper/internal/modules/fetcher"
	"quote-scraper/internal/modules/filereader"
	"quote-scraper/internal/modules/persistence"
	"quote-scraper/internal/modules/pipeline"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	configPath string
	outputPath string
	urlsFile   string
	endpoint   string
)

var rootCmd = &cobra.Command{
	Use:   "quotescraper",
	Short: "Scrape finance quote pages into a JSON file",
	Long: `A CLI tool that renders finance quote pages through a remote rendering API,
extracts name, price and change from each page and saves them as a JSON array.

Credentials for the rendering API are read from ` + config.UsernameEnv + ` and ` + config.PasswordEnv + `.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the given context and logger
func Execute(ctx context.Context, logger *zap.Logger) {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), logger)
	}
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file (default \"data.json\")")
	rootCmd.Flags().StringVarP(&urlsFile, "urls-file", "u", "", "File with one quote URL per line, replaces the configured list")
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "Rendering API endpoint")
	pflag.CommandLine.AddFlagSet(rootCmd.Flags())
}

func run(ctx context.Context, logger *zap.Logger) error {
	cfg, err := resolveConfig(ctx, logger)
	if err != nil {
		return err
	}

	logger.Info("starting quote scraping",
		zap.Int("urls", len(cfg.URLs)),
		zap.String("output", cfg.OutputPath),
		zap.String("endpoint", cfg.Render.Endpoint))

	return scrape(ctx, cfg, fetcher.New(cfg.Render, nil, logger), logger)
}

// resolveConfig layers defaults, the optional config file, the environment
// and flags, in that order.
func resolveConfig(ctx context.Context, logger *zap.Logger) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if endpoint != "" {
		cfg.Render.Endpoint = endpoint
	}
	if urlsFile != "" {
		urls, err := filereader.New(urlsFile).ReadURLs(ctx, logger)
		if err != nil {
			return nil, err
		}
		cfg.URLs = urls
	}

	if cfg.Render.Username == "" || cfg.Render.Password == "" {
		logger.Warn("rendering API credentials not set",
			zap.String("username_env", config.UsernameEnv),
			zap.String("password_env", config.PasswordEnv))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// scrape runs one full pass. The output file is written only when every URL
// succeeded.
func scrape(ctx context.Context, cfg *config.Config, f pipeline.Fetcher, logger *zap.Logger) error {
	p := pipeline.New(f, extractor.Parse, extractor.FromConfig(cfg.Selector), logger)

	quotes, err := p.Run(ctx, cfg.URLs)
	if err != nil {
		logger.Warn("run aborted, output not written", zap.String("output", cfg.OutputPath))
		return err
	}

	return persistence.New(cfg.OutputPath).Save(quotes, logger)
}
