package parser

import (
	"github.com/maltedev/product-qa/internal/models"
)

type Parser interface {
	ParseProductPage(html string) (*models.ProductRecord, error)
}
