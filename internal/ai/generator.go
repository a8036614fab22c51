package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const promptHeader = "System: You are a helpful dispatch assistant. Write 2 to 4 short sentences, " +
	"maximum 60 words. Must include ETA minutes and ask for a location pin or nearby landmark. " +
	"Be empathetic and action-focused. Do not add extra commentary. " +
	"Return only the message text."

var unusableReplies = map[string]struct{}{
	"do not comment.": {},
	"no other text.":  {},
}

type GeneratorConfig struct {
	BaseURL   string
	Model     string
	APIKey    string
	MaxTokens int
	Timeout   time.Duration
	RPS       float64
	CacheTTL  time.Duration
}

// OpenAICompatGenerator talks to any /chat/completions endpoint.
type OpenAICompatGenerator struct {
	cfg     GeneratorConfig
	client  *http.Client
	limiter *rate.Limiter
	cache   *expirable.LRU[string, string]
}

func NewOpenAICompatGenerator(cfg GeneratorConfig) *OpenAICompatGenerator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 90
	}
	g := &OpenAICompatGenerator{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RPS > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	if cfg.CacheTTL > 0 {
		g.cache = expirable.NewLRU[string, string](512, nil, cfg.CacheTTL)
	}
	return g
}

type RateLimitError struct {
	RetryAfter time.Duration
}

func (r RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", r.RetryAfter)
	}
	return "rate limited"
}

// BuildPrompt renders the generation prompt. Metadata marshals in field order,
// so equal inputs give equal prompts.
func BuildPrompt(req GenerationRequest) string {
	meta, _ := json.Marshal(req.Metadata)
	return promptHeader + "\n" +
		"User message: " + req.UserMessage + "\n" +
		"Dispatch details: " + string(meta) + "\n" +
		"Message:"
}

func (g *OpenAICompatGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if strings.TrimSpace(g.cfg.BaseURL) == "" || strings.TrimSpace(g.cfg.Model) == "" {
		return "", fmt.Errorf("generator: %w", ErrNotConfigured)
	}

	prompt := BuildPrompt(req)
	if g.cache != nil {
		if v, ok := g.cache.Get(prompt); ok {
			return v, nil
		}
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("generator rate limit: %w", err)
		}
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	payload := struct {
		Model       string   `json:"model"`
		Temperature float64  `json:"temperature"`
		MaxTokens   int      `json:"max_tokens,omitempty"`
		Stop        []string `json:"stop,omitempty"`
		Messages    []msg    `json:"messages"`
	}{
		Model:       g.cfg.Model,
		Temperature: 0.3,
		MaxTokens:   g.cfg.MaxTokens,
		Stop:        []string{"\n"},
		Messages:    []msg{{Role: "user", Content: prompt}},
	}

	b, _ := json.Marshal(payload)
	url := strings.TrimRight(g.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(g.cfg.APIKey) != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("generator request timed out")
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", fmt.Errorf("generator request timed out")
		}
		return "", fmt.Errorf("generator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", RateLimitError{RetryAfter: extractRetryAfter(errBody)}
		}
		return "", fmt.Errorf("generator http error: %s: %v", resp.Status, errBody)
	}

	var res struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("empty generator response")
	}
	text := strings.TrimSpace(res.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty generator response")
	}
	if _, bad := unusableReplies[strings.ToLower(text)]; bad {
		return "", fmt.Errorf("unusable generator response")
	}
	if g.cache != nil {
		g.cache.Add(prompt, text)
	}
	return text, nil
}

func extractRetryAfter(errBody map[string]any) time.Duration {
	errObj, ok := errBody["error"].(map[string]any)
	if !ok {
		return 0
	}
	details, ok := errObj["details"].([]any)
	if !ok {
		return 0
	}
	for _, d := range details {
		m, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := m["@type"].(string); ok && strings.Contains(t, "RetryInfo") {
			if s, ok := m["retryDelay"].(string); ok {
				if dur, err := time.ParseDuration(s); err == nil {
					return dur
				}
			}
		}
	}
	return 0
}
