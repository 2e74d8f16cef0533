// Package assistant talks to a generateContent-style text generation API on
// behalf of site visitors.
package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	// ErrDisabled is returned when the platform settings switch the AI
	// engine off or no API key is configured.
	ErrDisabled = errors.New("assistant: disabled")

	ErrUpstream = errors.New("assistant: upstream error")
)

const (
	RoleUser  = "user"
	RoleModel = "model"

	// FallbackReply is sent when the model answers with no text.
	FallbackReply = "I'm sorry, I couldn't process that request right now."
	OfflineReply  = "Our AI assistant is currently offline. Please try again later."

	systemPrompt = "You are Nuga Best Properties AI Assistant. Help the user with real estate queries related to Nigeria. Provide professional, concise advice."

	maxTurns     = 40
	maxTurnChars = 4000
)

type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// EnabledFunc reports whether the assistant may be used right now.
type EnabledFunc func(ctx context.Context) bool

type Client struct {
	cfg     Config
	http    *http.Client
	enabled EnabledFunc
	logger  *zap.Logger
}

func NewClient(cfg Config, enabled EnabledFunc, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if enabled == nil {
		enabled = func(context.Context) bool { return true }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		enabled: enabled,
		logger:  logger,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Reply sends the whole conversation, oldest turn first, and returns the
// model's next message. The last turn must be from the user.
func (c *Client) Reply(ctx context.Context, history []Turn) (string, error) {
	if c.cfg.APIKey == "" || !c.enabled(ctx) {
		return "", ErrDisabled
	}
	if len(history) == 0 || history[len(history)-1].Role != RoleUser {
		return "", fmt.Errorf("assistant: conversation must end with a user turn")
	}
	if len(history) > maxTurns {
		history = history[len(history)-maxTurns:]
	}

	req := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemPrompt}}},
		Contents:          make([]content, 0, len(history)),
		GenerationConfig:  generationConfig{Temperature: 0.7, TopP: 0.95},
	}
	for _, t := range history {
		role := RoleUser
		if t.Role == RoleModel {
			role = RoleModel
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: truncate(t.Text, maxTurnChars)}}})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), url.PathEscape(c.cfg.Model), url.QueryEscape(c.cfg.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("assistant upstream rejected request",
			zap.Int("status", resp.StatusCode),
			zap.Duration("took", time.Since(start)),
		)
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode body: %w", ErrUpstream, err)
	}

	var sb strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return FallbackReply, nil
	}
	return sb.String(), nil
}

// truncate keeps the first n characters of s without splitting a rune.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
