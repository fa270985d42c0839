package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// Logits holds one start and one end score per input token.
type Logits struct {
	Start []float64
	End   []float64
}

// SpanPredictor scores every token as a possible answer start and end.
type SpanPredictor interface {
	Predict(ctx context.Context, inputIDs, attentionMask []int) (*Logits, error)
}

type predictRequest struct {
	InputIDs      [][]int `json:"input_ids"`
	AttentionMask [][]int `json:"attention_mask"`
}

type predictResponse struct {
	StartLogits [][]float64 `json:"start_logits"`
	EndLogits   [][]float64 `json:"end_logits"`
}

// Client talks to a model server hosting the question answering head.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With("component", "inference"),
	}
}

// Health confirms the model is loaded and serving.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &ModelError{Op: "load", Err: err}
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ModelError{Op: "load", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &ModelError{Op: "load", Err: fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)}
	}
	return nil
}

func (c *Client) Predict(ctx context.Context, inputIDs, attentionMask []int) (*Logits, error) {
	if len(inputIDs) != len(attentionMask) {
		return nil, &ModelError{
			Op:  "predict",
			Err: fmt.Errorf("input ids and attention mask differ in length: %d != %d", len(inputIDs), len(attentionMask)),
		}
	}

	body, err := json.Marshal(predictRequest{
		InputIDs:      [][]int{inputIDs},
		AttentionMask: [][]int{attentionMask},
	})
	if err != nil {
		return nil, &ModelError{Op: "predict", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, &ModelError{Op: "predict", Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	c.logger.Debug("requesting span prediction", "request_id", requestID, "tokens", len(inputIDs))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ModelError{Op: "predict", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ModelError{
			Op:  "predict",
			Err: fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ModelError{Op: "predict", Err: fmt.Errorf("%w: %v", ErrMalformedOutput, err)}
	}

	if len(out.StartLogits) != 1 || len(out.EndLogits) != 1 {
		return nil, &ModelError{Op: "predict", Err: fmt.Errorf("%w: expected a batch of one", ErrMalformedOutput)}
	}

	logits := &Logits{Start: out.StartLogits[0], End: out.EndLogits[0]}
	if len(logits.Start) != len(inputIDs) || len(logits.End) != len(inputIDs) {
		return nil, &ModelError{
			Op: "predict",
			Err: fmt.Errorf("%w: got %d start and %d end logits for %d tokens",
				ErrMalformedOutput, len(logits.Start), len(logits.End), len(inputIDs)),
		}
	}

	c.logger.Debug("span prediction received", "request_id", requestID)
	return logits, nil
}
