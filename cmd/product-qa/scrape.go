package main

import (
	"github.com/spf13/cobra"
)

var scrapeJSON bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Extract a product record from a product page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		product, err := a.Scraper.ScrapeProduct(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if scrapeJSON {
			return renderJSON(cmd.OutOrStdout(), product)
		}
		renderProduct(cmd.OutOrStdout(), product)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeJSON, "json", false, "print the record as JSON")
}
