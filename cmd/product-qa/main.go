package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/maltedev/product-qa/internal/app"
	"github.com/maltedev/product-qa/internal/config"
	"github.com/maltedev/product-qa/pkg/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "product-qa",
	Short:         "Scrape a product page and answer questions about it",
	Long:          "Extracts title, prices, rating, images, features and specs from a product page, then answers free-text questions against the extracted description with an extractive span model.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = c
		log = logger.New(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd, askCmd, chatCmd, serveCmd)
}

func newApp() (*app.App, error) {
	a, err := app.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	return a, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}
