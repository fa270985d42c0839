package parser

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/product-qa/internal/models"
)

const (
	titleSelector    = "span#productTitle"
	ratingSelector   = "span.a-icon-alt"
	featuresSelector = "div#feature-bullets"
	specsSelector    = "table#productDetails_techSpec_section_1"
	detailsSelector  = "div#productDetails_db_sections"
	imageAttribute   = "data-a-dynamic-image"
	leftToRightMark  = "\u200e"
)

var (
	textSplitPattern  = regexp.MustCompile(`\n|  `)
	specsSplitPattern = regexp.MustCompile(`\n|\x{200e}|  `)
)

// lookup is one strategy in a fallback chain.
type lookup struct {
	name string
	find func(doc *goquery.Document) *goquery.Selection
}

func bySelector(selector string) lookup {
	return lookup{
		name: selector,
		find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(selector)
		},
	}
}

func chain(selectors ...string) []lookup {
	lookups := make([]lookup, len(selectors))
	for i, selector := range selectors {
		lookups[i] = bySelector(selector)
	}
	return lookups
}

// firstMatch tries each lookup in priority order and returns the first
// element of the first lookup that matches anything. Later lookups are never
// consulted once an earlier one matched.
func firstMatch(doc *goquery.Document, field string, lookups []lookup) (*goquery.Selection, error) {
	names := make([]string, 0, len(lookups))
	for _, l := range lookups {
		if sel := l.find(doc); sel.Length() > 0 {
			return sel.First(), nil
		}
		names = append(names, l.name)
	}
	return nil, missingField(field, names...)
}

type AmazonParser struct {
	discountPriceChain []lookup
	actualPriceChain   []lookup
	now                func() time.Time
}

func NewAmazonParser() *AmazonParser {
	return &AmazonParser{
		discountPriceChain: chain(
			"span#priceblock_dealprice",
			"span#priceblock_ourprice",
			"span#tp_price_block_total_price_ww",
		),
		actualPriceChain: chain(
			"span.priceBlockStrikePriceString",
			"span.a-text-price",
		),
		now: time.Now,
	}
}

func (p *AmazonParser) ParseProductPage(html string) (*models.ProductRecord, error) {
	return p.Parse(strings.NewReader(html))
}

// Parse runs the extraction pipeline over a product page. Every field is
// required; the first missing one aborts the run.
func (p *AmazonParser) Parse(r io.Reader) (*models.ProductRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title, err := p.extractTitle(doc)
	if err != nil {
		return nil, err
	}

	discountPrice, err := p.extractPrice(doc, "discount price", p.discountPriceChain)
	if err != nil {
		return nil, err
	}

	actualPrice, err := p.extractPrice(doc, "actual price", p.actualPriceChain)
	if err != nil {
		return nil, err
	}

	images, err := p.extractImages(doc, title)
	if err != nil {
		return nil, err
	}

	rating, err := p.extractRating(doc)
	if err != nil {
		return nil, err
	}

	features, err := p.extractFeatures(doc)
	if err != nil {
		return nil, err
	}

	specs, err := p.extractSpecs(doc)
	if err != nil {
		return nil, err
	}

	details, err := p.extractDetails(doc)
	if err != nil {
		return nil, err
	}

	discountPrice = models.DiscountPriceLabel + discountPrice
	actualPrice = models.ActualPriceLabel + actualPrice

	context, err := BuildContext(title, discountPrice, actualPrice, features, specs)
	if err != nil {
		return nil, err
	}

	return &models.ProductRecord{
		Title:         title,
		DiscountPrice: discountPrice,
		ActualPrice:   actualPrice,
		Rating:        rating,
		Images:        images,
		Features:      features,
		Specs:         specs,
		Details:       details,
		Context:       context,
		ScrapedAt:     p.now(),
	}, nil
}

func (p *AmazonParser) extractTitle(doc *goquery.Document) (string, error) {
	sel, err := firstMatch(doc, "title", chain(titleSelector))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sel.Text()), nil
}

func (p *AmazonParser) extractPrice(doc *goquery.Document, field string, lookups []lookup) (string, error) {
	sel, err := firstMatch(doc, field, lookups)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sel.Text()), nil
}

// extractImages finds the image whose alt text is the product title. The alt
// is compared as a plain string since titles routinely contain quotes and
// brackets that would break an attribute selector.
func (p *AmazonParser) extractImages(doc *goquery.Document, title string) (models.ImageSet, error) {
	img := doc.Find("img[" + imageAttribute + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		alt, ok := s.Attr("alt")
		return ok && alt == title
	}).First()

	raw, ok := img.Attr(imageAttribute)
	if !ok {
		return nil, missingField("images", "img[alt=<title>]["+imageAttribute+"]")
	}

	images, err := models.ParseImageSet(raw)
	if err != nil {
		return nil, &ExtractionError{Field: "images", Err: errors.Join(ErrInvalidImages, err)}
	}
	return images, nil
}

func (p *AmazonParser) extractRating(doc *goquery.Document) (string, error) {
	sel, err := firstMatch(doc, "rating", chain(ratingSelector))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sel.Text()), nil
}

// extractFeatures walks the bullet list (headings included, in document
// order). Containers without list markup fall back to splitting the rendered
// text.
func (p *AmazonParser) extractFeatures(doc *goquery.Document) ([]string, error) {
	container, err := firstMatch(doc, "features", chain(featuresSelector))
	if err != nil {
		return nil, err
	}

	items := container.Find("li")
	if items.Length() == 0 {
		return splitClean(strings.TrimSpace(container.Text()), textSplitPattern), nil
	}

	var features []string
	container.Find("h1, h2, h3, li").Each(func(_ int, s *goquery.Selection) {
		if text := normalizeCell(s.Text()); text != "" {
			features = append(features, text)
		}
	})
	return features, nil
}

// extractSpecs pairs label and value cells row by row. The result must have
// even length; an unpaired cell is an extraction failure, never dropped.
func (p *AmazonParser) extractSpecs(doc *goquery.Document) ([]string, error) {
	table, err := firstMatch(doc, "specs", chain(specsSelector))
	if err != nil {
		return nil, err
	}

	var specs []string
	if rows := table.Find("tr"); rows.Length() > 0 {
		specs = walkRows(rows)
	} else {
		specs = splitClean(strings.TrimSpace(table.Text()), specsSplitPattern)
	}

	if len(specs)%2 != 0 {
		return nil, &ExtractionError{
			Field:      "specs",
			Candidates: []string{specsSelector},
			Err:        fmt.Errorf("%w: %d entries", ErrOddSpecs, len(specs)),
		}
	}
	return specs, nil
}

func (p *AmazonParser) extractDetails(doc *goquery.Document) ([]string, error) {
	container, err := firstMatch(doc, "details", chain(detailsSelector))
	if err != nil {
		return nil, err
	}

	if rows := container.Find("tr"); rows.Length() > 0 {
		return walkRows(rows), nil
	}
	return splitClean(container.Text(), textSplitPattern), nil
}

func walkRows(rows *goquery.Selection) []string {
	var cells []string
	rows.Each(func(_ int, row *goquery.Selection) {
		row.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			if text := normalizeCell(cell.Text()); text != "" {
				cells = append(cells, text)
			}
		})
	})
	return cells
}

// normalizeCell drops left-to-right marks and collapses whitespace runs.
func normalizeCell(text string) string {
	text = strings.ReplaceAll(text, leftToRightMark, "")
	return strings.Join(strings.Fields(text), " ")
}

// splitClean is the text heuristic for containers without structure: split on
// the pattern, drop blank fragments, trim the rest.
func splitClean(text string, pattern *regexp.Regexp) []string {
	var out []string
	for _, fragment := range pattern.Split(text, -1) {
		if fragment = strings.TrimSpace(fragment); fragment != "" {
			out = append(out, fragment)
		}
	}
	return out
}
