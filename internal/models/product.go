package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DiscountPriceLabel = "Product Price after Discount "
	ActualPriceLabel   = "Product Actual Price "
)

// ProductRecord is the result of one extraction run. It is built fresh for
// every URL and never mutated after the parser returns it.
type ProductRecord struct {
	URL           string    `json:"url,omitempty"`
	Title         string    `json:"title"`
	DiscountPrice string    `json:"discount_price"`
	ActualPrice   string    `json:"actual_price"`
	Rating        string    `json:"rating"`
	Images        ImageSet  `json:"images"`
	Features      []string  `json:"features"`
	Specs         []string  `json:"specs"`
	Details       []string  `json:"details"`
	Context       string    `json:"context"`
	ScrapedAt     time.Time `json:"scraped_at"`
}

type SpecPair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type FeatureHighlight struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

var ratingPattern = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)`)

// RatingValue parses the leading decimal of a rating like "4.3 out of 5 stars".
func (p *ProductRecord) RatingValue() (float64, error) {
	match := ratingPattern.FindStringSubmatch(p.Rating)
	if len(match) < 2 {
		return 0, fmt.Errorf("rating %q has no leading number", p.Rating)
	}
	return strconv.ParseFloat(strings.Replace(match[1], ",", ".", 1), 64)
}

// Stars buckets the rating into a 1-5 star count. Ratings that cannot be
// parsed or fall outside the lower buckets render as five stars.
func (p *ProductRecord) Stars() int {
	rating, err := p.RatingValue()
	if err != nil {
		return 5
	}

	switch {
	case rating >= 0.5 && rating < 1.5:
		return 1
	case rating >= 1.5 && rating < 2.5:
		return 2
	case rating >= 2.5 && rating < 3.5:
		return 3
	case rating >= 3.5 && rating < 4.5:
		return 4
	default:
		return 5
	}
}

// DisplayTitle splits "Name (Color, Size)" into the name and the parenthesised
// qualifier. The qualifier keeps its opening bracket.
func (p *ProductRecord) DisplayTitle() (name, qualifier string) {
	idx := strings.Index(p.Title, "(")
	if idx < 0 {
		return strings.TrimSpace(p.Title), ""
	}
	return strings.TrimSpace(p.Title[:idx]), p.Title[idx:]
}

// SpecPairs views Specs as label/value pairs. A trailing unpaired label is
// ignored here; the parser rejects such records before they reach callers.
func (p *ProductRecord) SpecPairs() []SpecPair {
	pairs := make([]SpecPair, 0, len(p.Specs)/2)
	for i := 0; i+1 < len(p.Specs); i += 2 {
		pairs = append(pairs, SpecPair{Label: p.Specs[i], Value: p.Specs[i+1]})
	}
	return pairs
}

func (p *ProductRecord) FeatureHighlights() []FeatureHighlight {
	highlights := make([]FeatureHighlight, 0, len(p.Features))
	for _, feature := range p.Features {
		key, value, found := strings.Cut(feature, ":")
		if !found {
			highlights = append(highlights, FeatureHighlight{Value: strings.TrimSpace(feature)})
			continue
		}
		highlights = append(highlights, FeatureHighlight{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return highlights
}

func (p *ProductRecord) Validate() []string {
	var errors []string

	if p.Title == "" {
		errors = append(errors, "Title is required")
	}

	if !strings.HasPrefix(p.DiscountPrice, DiscountPriceLabel) {
		errors = append(errors, "Discount price is missing its label")
	}

	if !strings.HasPrefix(p.ActualPrice, ActualPriceLabel) {
		errors = append(errors, "Actual price is missing its label")
	}

	if len(p.Specs)%2 != 0 {
		errors = append(errors, "Specs must hold label/value pairs")
	}

	if p.Context == "" {
		errors = append(errors, "Context is required")
	}

	return errors
}
