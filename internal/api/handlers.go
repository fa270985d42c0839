package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maltedev/product-qa/internal/inference"
	"github.com/maltedev/product-qa/internal/models"
	"github.com/maltedev/product-qa/internal/parser"
	"github.com/maltedev/product-qa/internal/qa"
	"github.com/maltedev/product-qa/internal/scraper"
)

type Answerer interface {
	Answer(ctx context.Context, productContext, question string) (*models.QAResult, error)
}

type HealthChecker interface {
	Health(ctx context.Context) error
}

type Handlers struct {
	scraper scraper.Scraper
	qa      Answerer
	model   HealthChecker
	logger  *slog.Logger
}

func NewHandlers(s scraper.Scraper, answerer Answerer, model HealthChecker, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper: s,
		qa:      answerer,
		model:   model,
		logger:  logger.With("component", "api"),
	}
}

// ProductRequest represents a product page to scrape
type ProductRequest struct {
	URL string `json:"url"`
}

// ProductResponse is the scraped record plus the values the UI renders from it
type ProductResponse struct {
	*models.ProductRecord
	Name         string                    `json:"name"`
	Qualifier    string                    `json:"qualifier,omitempty"`
	RatingValue  float64                   `json:"rating_value"`
	Stars        int                       `json:"stars"`
	PrimaryImage string                    `json:"primary_image"`
	SpecPairs    []models.SpecPair         `json:"spec_pairs"`
	Highlights   []models.FeatureHighlight `json:"highlights"`
}

func newProductResponse(p *models.ProductRecord) ProductResponse {
	name, qualifier := p.DisplayTitle()
	rating, _ := p.RatingValue()
	return ProductResponse{
		ProductRecord: p,
		Name:          name,
		Qualifier:     qualifier,
		RatingValue:   rating,
		Stars:         p.Stars(),
		PrimaryImage:  p.Images.Primary(),
		SpecPairs:     p.SpecPairs(),
		Highlights:    p.FeatureHighlights(),
	}
}

// ScrapeProduct runs the extraction pipeline for one URL
func (h *Handlers) ScrapeProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	product, err := h.scraper.ScrapeProduct(r.Context(), req.URL)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, newProductResponse(product))
}

// AnswerRequest carries either a prepared context or a URL to scrape first
type AnswerRequest struct {
	Context  string `json:"context"`
	URL      string `json:"url"`
	Question string `json:"question"`
}

type AnswerResponse struct {
	*models.QAResult
	Warning string `json:"warning,omitempty"`
}

// Answer runs the QA pipeline against the product context
func (h *Handlers) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Context == "" && req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "either context or url is required")
		return
	}

	if qa.IsEmptyQuestion(req.Question) {
		h.respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	productContext := req.Context
	if productContext == "" {
		product, err := h.scraper.ScrapeProduct(r.Context(), req.URL)
		if err != nil {
			h.respondFailure(w, err)
			return
		}
		productContext = product.Context
	}

	result, err := h.qa.Answer(r.Context(), productContext, req.Question)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	resp := AnswerResponse{QAResult: result}
	if result.LowConfidence {
		resp.Warning = qa.LowConfidenceWarning
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// Health reports whether the model server is reachable
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status": "ok",
		"model":  "ok",
	}

	status := http.StatusOK
	if h.model != nil {
		if err := h.model.Health(r.Context()); err != nil {
			health["status"] = "degraded"
			health["model"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	h.respondJSON(w, status, health)
}

// respondFailure maps pipeline errors to statuses. Failures are local to the
// request; nothing partial is returned.
func (h *Handlers) respondFailure(w http.ResponseWriter, err error) {
	var (
		fetchErr      *scraper.FetchError
		extractionErr *parser.ExtractionError
		modelErr      *inference.ModelError
	)

	switch {
	case errors.Is(err, qa.ErrEmptyQuestion):
		h.respondError(w, http.StatusBadRequest, "question is required")
	case errors.Is(err, qa.ErrEmptyContext):
		h.respondError(w, http.StatusBadRequest, "context is empty")
	case errors.As(err, &fetchErr):
		h.logger.Error("failed to fetch product page", "error", err)
		h.respondError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &extractionErr), errors.Is(err, scraper.ErrIncompleteRecord):
		h.logger.Warn("failed to extract product", "error", err)
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &modelErr):
		h.logger.Error("model failed", "error", err)
		h.respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		h.logger.Error("request failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// Helper methods
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
