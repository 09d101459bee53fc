package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skytrail/tripcast/internal/tips"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/httpclient"
	"github.com/skytrail/tripcast/pkg/logger"
)

const (
	generatePath = "/api/generate"
	probeTimeout = 5 * time.Second
	maxTipLength = 250
)

// OllamaGenerator asks a local Ollama model for prose and falls back to
// the template generator when the model is unreachable or returns nothing.
type OllamaGenerator struct {
	client   *httpclient.Client
	probe    *httpclient.Client
	model    string
	fallback *TemplateGenerator
}

// NewOllamaGenerator creates a generator for the configured Ollama instance.
func NewOllamaGenerator(cfg config.OllamaConfig) *OllamaGenerator {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	return &OllamaGenerator{
		client:   httpclient.NewClient(cfg.BaseURL, timeout),
		probe:    httpclient.NewClient(cfg.BaseURL, probeTimeout),
		model:    cfg.Model,
		fallback: NewTemplateGenerator(),
	}
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Available reports whether the Ollama endpoint answers a minimal request.
func (g *OllamaGenerator) Available(ctx context.Context) bool {
	_, err := g.probe.Post(ctx, generatePath, generateRequest{Model: g.model, Prompt: "test"}, nil)
	return err == nil
}

// Explanation generates best-week prose with the model, falling back to the
// template sentence on any failure.
func (g *OllamaGenerator) Explanation(ctx context.Context, in Input) string {
	text, err := g.generate(ctx, explanationPrompt(in), map[string]interface{}{
		"temperature": 0.7,
		"num_predict": 150,
	})
	if err != nil {
		logger.Warn("ollama explanation failed, using template",
			zap.String("destination", in.Destination),
			zap.Error(err))
		return g.fallback.Explanation(ctx, in)
	}

	return text
}

// Tip generates a travel tip with the model. Long replies are cut back to
// their first two sentences.
func (g *OllamaGenerator) Tip(ctx context.Context, in Input) string {
	text, err := g.generate(ctx, tipPrompt(in), map[string]interface{}{
		"temperature": 0.8,
		"num_predict": 120,
		"top_p":       0.9,
	})
	if err != nil {
		logger.Warn("ollama tip failed, using template",
			zap.String("destination", in.Destination),
			zap.Error(err))
		return g.fallback.Tip(ctx, in)
	}

	return trimTip(text)
}

func (g *OllamaGenerator) generate(ctx context.Context, prompt string, options map[string]interface{}) (string, error) {
	body, err := g.client.Post(ctx, generatePath, generateRequest{
		Model:   g.model,
		Prompt:  prompt,
		Options: options,
	}, nil)
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	text := strings.TrimSpace(resp.Response)
	if text == "" {
		return "", errors.New("ollama returned an empty response")
	}

	return text, nil
}

func explanationPrompt(in Input) string {
	return fmt.Sprintf(`You are a travel advisor.

Destination: %s.
Best week: %s (%s).
Predicted price: $%.2f USD.
Weather: %.1f°C, %.1fmm precipitation.
Crowd level: %.1f / 100.
Travel score: %.1f / 100.
Confidence: %.0f%%.

Explain in 2-3 sentences why this week is the best time to go.
Focus on the balance of price, weather, and crowd levels.
Be specific and mention actual numbers when relevant.`,
		in.Destination,
		in.WeekStart.Format("January 02, 2006"),
		in.WeekStart.Format("January"),
		in.Price,
		in.Temperature,
		in.Precipitation,
		in.Crowd,
		in.TravelScore,
		in.Confidence*100,
	)
}

func tipPrompt(in Input) string {
	month := in.WeekStart.Format("January")

	eventContext := ""
	if len(in.EventNames) > 0 {
		names := in.EventNames
		if len(names) > 2 {
			names = names[:2]
		}
		eventContext = "\n- Major Events: " + strings.Join(names, ", ")
	}

	return fmt.Sprintf(`You are a helpful travel advisor. Generate a personalized, actionable travel tip for someone visiting %s.

Trip Details:
- Destination: %s
- Travel Month: %s (%s)
- Temperature: %.1f°C
- Precipitation: %.1fmm
- Crowd Level: %s%s
- Trip Length: %d days

Generate a 2-3 sentence travel tip that:
1. Mentions the season/month and what makes it special
2. If there are major events, mention them and suggest attending
3. Gives specific, actionable advice about what to pack or do
4. Is friendly, encouraging, and helpful

Example: "Since you're visiting during spring, pack light jackets and enjoy Paris's cherry blossoms in full bloom. The mild weather is perfect for long walks along the Seine."

Generate a similar tip for %s in %s:`,
		in.Destination,
		in.Destination,
		month,
		tips.Season(in.WeekStart.Month()),
		in.Temperature,
		in.Precipitation,
		tips.DescribeCrowd(in.Crowd),
		eventContext,
		in.TripDays,
		in.Destination,
		month,
	)
}

// trimTip strips wrapping quotes and keeps overlong replies to two sentences.
func trimTip(text string) string {
	tip := strings.TrimSpace(text)
	tip = strings.Trim(tip, `"'`)
	tip = strings.TrimSpace(tip)

	if len(tip) <= maxTipLength {
		return tip
	}

	sentences := strings.Split(tip, ". ")
	if len(sentences) < 2 {
		return tip
	}

	return strings.Join(sentences[:2], ". ") + "."
}
