package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/maltedev/product-qa/internal/inference"
	"github.com/maltedev/product-qa/internal/models"
	"github.com/maltedev/product-qa/internal/parser"
	"github.com/maltedev/product-qa/internal/qa"
	"github.com/maltedev/product-qa/internal/scraper"
)

func renderProduct(w io.Writer, p *models.ProductRecord) {
	name, qualifier := p.DisplayTitle()
	fmt.Fprintln(w, name)
	if qualifier != "" {
		fmt.Fprintln(w, qualifier)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.DiscountPrice)
	fmt.Fprintln(w, p.ActualPrice)
	fmt.Fprintf(w, "%s  %s\n", strings.Repeat("★", p.Stars())+strings.Repeat("☆", 5-p.Stars()), p.Rating)
	if img := p.Images.Primary(); img != "" {
		fmt.Fprintln(w, "Image:", img)
	}

	if len(p.Features) > 0 {
		fmt.Fprintln(w, "\nFeatures")
		for _, h := range p.FeatureHighlights() {
			if h.Key == "" {
				fmt.Fprintf(w, "  - %s\n", h.Value)
				continue
			}
			fmt.Fprintf(w, "  - %s: %s\n", h.Key, h.Value)
		}
	}

	if pairs := p.SpecPairs(); len(pairs) > 0 {
		fmt.Fprintln(w, "\nSpecifications")
		for _, pair := range pairs {
			fmt.Fprintf(w, "  %-28s %s\n", pair.Label, pair.Value)
		}
	}
}

func renderAnswer(w io.Writer, result *models.QAResult) {
	if result.LowConfidence || result.Answer == "" {
		fmt.Fprintln(w, qa.LowConfidenceWarning)
		return
	}
	fmt.Fprintln(w, "Answer:", result.Answer)
}

func renderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe turns pipeline failures into a message for the terminal.
func describe(err error) string {
	var (
		fetchErr      *scraper.FetchError
		extractionErr *parser.ExtractionError
		modelErr      *inference.ModelError
	)

	switch {
	case errors.As(err, &fetchErr):
		return fmt.Sprintf("could not load the product page: %v", err)
	case errors.As(err, &extractionErr):
		return fmt.Sprintf("the page does not look like a supported product listing (%s missing): %v", extractionErr.Field, err)
	case errors.Is(err, scraper.ErrIncompleteRecord):
		return fmt.Sprintf("the product page was only partly readable: %v", err)
	case errors.As(err, &modelErr):
		return fmt.Sprintf("the answer model is unavailable: %v", err)
	case errors.Is(err, qa.ErrEmptyQuestion):
		return "please enter a question"
	default:
		return err.Error()
	}
}
