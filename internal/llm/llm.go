// Package llm generates feed post content with the Gemini API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"decathlonminds/internal/core"
)

const (
	// DefaultModel is the default Gemini model for post generation.
	DefaultModel = "gemini-flash-lite-latest"

	// requestsPerSecond smooths bursts of concurrent generation against the
	// API's per-minute quota.
	requestsPerSecond = 4
)

// Client wraps the Gemini SDK for feed post generation.
type Client struct {
	modelName string
	gClient   *genai.Client
	limiter   *rate.Limiter
}

// NewClient creates an LLM client. The API key is taken from the environment
// (GEMINI_API_KEY, GOOGLE_GEMINI_API_KEY, GOOGLE_AI_API_KEY) or from the
// ai.gemini.api_key config entry.
func NewClient(modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
				apiKey = viper.GetString("ai.gemini.api_key")
			}
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}

	if modelName == "" {
		modelName = viper.GetString("ai.gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName: modelName,
		gClient:   gClient,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}, nil
}

// GeneratePost asks the model for one feed item of the given kind, themed for
// the mood and reason tokens. Returns ErrMalformedResponse-style errors as
// plain wrapped errors; the assembler decides the fallback policy.
func (c *Client) GeneratePost(ctx context.Context, kind core.Kind, moodToken, reasonToken string) (core.Item, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	prompt, err := buildPrompt(kind, moodToken, reasonToken)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}
	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s post: %w", kind, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model for %s post", kind)
	}

	item, err := decodeItem(kind, text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s post: %w", kind, err)
	}
	return item, nil
}

// buildPrompt renders the per-kind generation prompt. Every prompt demands a
// single bare JSON object so decodeItem can parse the reply directly.
func buildPrompt(kind core.Kind, moodToken, reasonToken string) (string, error) {
	theme := "a general audience interested in walking and outdoor activity"
	if moodToken != "" {
		theme = fmt.Sprintf("a reader who is currently feeling %s", strings.ToLower(moodToken))
	}
	if reasonToken != "" {
		theme += fmt.Sprintf(" because of %s", strings.ToLower(reasonToken))
	}

	var body string
	switch kind {
	case core.KindScientific:
		body = `Write a short, encouraging summary of a real scientific finding about walking, running or outdoor movement and mental wellbeing.
Respond with ONLY a JSON object, no markdown fences, with exactly these keys:
{"title": string, "body": string (60-120 words), "author": string, "source": string}`
	case core.KindQuote:
		body = `Choose an uplifting quote about movement, nature or perseverance from a real author.
Respond with ONLY a JSON object, no markdown fences, with exactly these keys:
{"text": string, "author": string, "background": string (a background color token such as "sunrise", "forest" or "ocean")}`
	case core.KindRoute:
		body = `Invent a plausible walking or running route suggestion in a European city or natural area.
Respond with ONLY a JSON object, no markdown fences, with exactly these keys:
{"title": string, "location": string, "distanceKm": number, "durationMin": number, "difficulty": "easy"|"moderate"|"hard", "description": string (40-80 words)}`
	case core.KindEvent:
		body = `Invent a plausible upcoming community walking, running or outdoor wellbeing event.
Respond with ONLY a JSON object, no markdown fences, with exactly these keys:
{"title": string, "date": string (ISO 8601 date), "location": string, "description": string (40-80 words), "registrationLink": string}`
	default:
		return "", fmt.Errorf("unknown post kind %q", kind)
	}

	return fmt.Sprintf("You are writing for %s.\n\n%s", theme, body), nil
}

// decodeItem parses the model reply into a typed feed item. Models sometimes
// wrap JSON in markdown fences despite instructions, so those are stripped
// first.
func decodeItem(kind core.Kind, text string) (core.Item, error) {
	raw := stripFences(text)

	switch kind {
	case core.KindScientific:
		var payload struct {
			Title  string `json:"title"`
			Body   string `json:"body"`
			Author string `json:"author"`
			Source string `json:"source"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, err
		}
		if payload.Title == "" || payload.Body == "" {
			return nil, fmt.Errorf("scientific post is missing title or body")
		}
		return &core.ScientificItem{
			ID:     uuid.NewString(),
			Title:  payload.Title,
			Body:   payload.Body,
			Author: payload.Author,
			Source: payload.Source,
		}, nil

	case core.KindQuote:
		var payload struct {
			Text       string `json:"text"`
			Author     string `json:"author"`
			Background string `json:"background"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, err
		}
		if payload.Text == "" {
			return nil, fmt.Errorf("quote post is missing text")
		}
		return &core.QuoteItem{
			ID:         uuid.NewString(),
			Text:       payload.Text,
			Author:     payload.Author,
			Background: payload.Background,
		}, nil

	case core.KindRoute:
		var payload struct {
			Title       string  `json:"title"`
			Location    string  `json:"location"`
			DistanceKm  float64 `json:"distanceKm"`
			DurationMin int     `json:"durationMin"`
			Difficulty  string  `json:"difficulty"`
			Description string  `json:"description"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, err
		}
		if payload.Title == "" || payload.Location == "" {
			return nil, fmt.Errorf("route post is missing title or location")
		}
		return &core.RouteItem{
			ID:          uuid.NewString(),
			Title:       payload.Title,
			Location:    payload.Location,
			DistanceKm:  payload.DistanceKm,
			DurationMin: payload.DurationMin,
			Difficulty:  core.NormalizeDifficulty(payload.Difficulty),
			Description: payload.Description,
		}, nil

	case core.KindEvent:
		var payload struct {
			Title            string `json:"title"`
			Date             string `json:"date"`
			Location         string `json:"location"`
			Description      string `json:"description"`
			RegistrationLink string `json:"registrationLink"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, err
		}
		if payload.Title == "" {
			return nil, fmt.Errorf("event post is missing title")
		}
		return &core.EventItem{
			ID:               uuid.NewString(),
			Title:            payload.Title,
			Date:             payload.Date,
			Location:         payload.Location,
			Description:      payload.Description,
			RegistrationLink: payload.RegistrationLink,
		}, nil
	}

	return nil, fmt.Errorf("unknown post kind %q", kind)
}

// stripFences removes a surrounding ```json ... ``` block if present and
// trims to the outermost JSON object.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}
