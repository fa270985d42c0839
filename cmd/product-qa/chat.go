package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maltedev/product-qa/internal/qa"
)

var chatCmd = &cobra.Command{
	Use:   "chat <url>",
	Short: "Scrape a product page once, then answer questions from stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		product, err := a.Scraper.ScrapeProduct(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderProduct(out, product)

		fmt.Fprint(out, "\nAsk about the product (Ctrl-D to quit)\n> ")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				fmt.Fprint(out, "> ")
				continue
			}

			result, err := a.Pipeline.Answer(cmd.Context(), product.Context, question)
			switch {
			case errors.Is(err, qa.ErrEmptyQuestion):
			case err != nil:
				fmt.Fprintln(out, "Error:", describe(err))
			default:
				renderAnswer(out, result)
			}
			fmt.Fprint(out, "> ")
		}
		fmt.Fprintln(out)
		return scanner.Err()
	},
}
