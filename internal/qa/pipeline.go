package qa

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/maltedev/product-qa/internal/cache"
	"github.com/maltedev/product-qa/internal/inference"
	"github.com/maltedev/product-qa/internal/models"
	"github.com/maltedev/product-qa/internal/spelling"
	"github.com/maltedev/product-qa/internal/tokenizer"
)

// LowConfidenceWarning is shown instead of an answer the model was unsure of.
const LowConfidenceWarning = "Please Try Changing the Keyword !!!"

var (
	ErrEmptyQuestion = errors.New("question is empty")
	ErrEmptyContext  = errors.New("context is empty")
)

// Tokenizer encodes question/context pairs and decodes spans.
type Tokenizer interface {
	Decoder
	EncodePair(question, context string) *tokenizer.Encoding
}

// Pipeline answers questions against a product context. Its artifacts are
// loaded lazily and shared by every call.
type Pipeline struct {
	tokenizer *cache.Lazy[Tokenizer]
	model     *cache.Lazy[inference.SpanPredictor]
	corrector *cache.Lazy[spelling.Corrector]
	logger    *slog.Logger
}

func NewPipeline(
	tok *cache.Lazy[Tokenizer],
	model *cache.Lazy[inference.SpanPredictor],
	corrector *cache.Lazy[spelling.Corrector],
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		tokenizer: tok,
		model:     model,
		corrector: corrector,
		logger:    logger.With("component", "qa"),
	}
}

func (p *Pipeline) Answer(ctx context.Context, productContext, rawQuestion string) (*models.QAResult, error) {
	if IsEmptyQuestion(rawQuestion) {
		return nil, ErrEmptyQuestion
	}
	if productContext == "" {
		return nil, ErrEmptyContext
	}

	start := time.Now()

	corrector, err := p.corrector.Get(ctx)
	if err != nil {
		return nil, asModelError("load spelling model", err)
	}
	tok, err := p.tokenizer.Get(ctx)
	if err != nil {
		return nil, asModelError("load tokenizer", err)
	}
	model, err := p.model.Get(ctx)
	if err != nil {
		return nil, asModelError("load", err)
	}

	question := NormalizeQuestion(rawQuestion, corrector)
	encoding := tok.EncodePair(question, productContext)
	if encoding.Truncated > 0 {
		p.logger.Warn("context truncated to fit the model", "dropped_tokens", encoding.Truncated)
	}

	logits, err := model.Predict(ctx, encoding.InputIDs, encoding.AttentionMask)
	if err != nil {
		return nil, asModelError("predict", err)
	}
	if len(logits.Start) == 0 || len(logits.End) == 0 {
		return nil, &inference.ModelError{Op: "predict", Err: inference.ErrMalformedOutput}
	}

	span := SelectSpan(logits.Start, logits.End)
	answer, onlySpecial := DecodeSpan(tok, encoding.InputIDs, span)

	result := &models.QAResult{
		ID:            uuid.NewString(),
		Context:       productContext,
		Question:      question,
		Answer:        answer,
		StartIndex:    span.Start,
		EndIndex:      span.End,
		LowConfidence: onlySpecial || ClassifyAnswer(answer),
	}

	p.logger.Info("answered question",
		"id", result.ID,
		"question", question,
		"start", span.Start,
		"end", span.End,
		"low_confidence", result.LowConfidence,
		"duration", time.Since(start),
	)

	return result, nil
}

func asModelError(op string, err error) error {
	var modelErr *inference.ModelError
	if errors.As(err, &modelErr) {
		return err
	}
	return &inference.ModelError{Op: op, Err: err}
}
