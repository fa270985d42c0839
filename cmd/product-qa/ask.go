package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask <url> <question>",
	Short: "Scrape a product page and answer one question about it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		_, result, err := a.Ask(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		if askJSON {
			return renderJSON(cmd.OutOrStdout(), result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Question:", result.Question)
		renderAnswer(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the result as JSON")
}
