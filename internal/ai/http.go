package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// HTTPAnalyzer calls a natural-language-understanding service that accepts a
// keywords/entities feature request and answers with scored text spans.
type HTTPAnalyzer struct {
	BaseURL string
	APIKey  string
	Limit   int
	Client  *http.Client
	Limiter *rate.Limiter
}

type analyzeFeature struct {
	Limit int `json:"limit"`
}

type analyzeRequest struct {
	Text     string `json:"text"`
	Features struct {
		Keywords analyzeFeature `json:"keywords"`
		Entities analyzeFeature `json:"entities"`
	} `json:"features"`
}

type analyzeSpan struct {
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

type analyzeResponse struct {
	Keywords []analyzeSpan `json:"keywords"`
	Entities []analyzeSpan `json:"entities"`
}

func (h HTTPAnalyzer) Analyze(ctx context.Context, text string) (Analysis, int64, error) {
	if strings.TrimSpace(h.BaseURL) == "" {
		return Analysis{}, 0, fmt.Errorf("analyzer: %w", ErrNotConfigured)
	}
	if h.Client == nil {
		h.Client = &http.Client{Timeout: 15 * time.Second}
	}
	limit := h.Limit
	if limit <= 0 {
		limit = 8
	}

	var payload analyzeRequest
	payload.Text = text
	payload.Features.Keywords.Limit = limit
	payload.Features.Entities.Limit = limit
	b, _ := json.Marshal(payload)
	start := time.Now()

	if h.Limiter != nil {
		if err := h.Limiter.Wait(ctx); err != nil {
			return Analysis{}, 0, fmt.Errorf("analyzer rate limit: %w", err)
		}
	}

	url := strings.TrimRight(h.BaseURL, "/") + "/v1/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return Analysis{}, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(h.APIKey) != "" {
		req.SetBasicAuth("apikey", h.APIKey)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return Analysis{}, time.Since(start).Milliseconds(), fmt.Errorf("analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Analysis{}, time.Since(start).Milliseconds(), fmt.Errorf("analyzer http error: %s", resp.Status)
	}

	var r analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Analysis{}, time.Since(start).Milliseconds(), fmt.Errorf("analyzer decode: %w", err)
	}

	return Analysis{
		Keywords: spanTexts(r.Keywords),
		Entities: spanTexts(r.Entities),
	}, time.Since(start).Milliseconds(), nil
}

func spanTexts(spans []analyzeSpan) []string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		t := strings.ToLower(strings.TrimSpace(s.Text))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
