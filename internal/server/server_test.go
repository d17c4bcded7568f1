package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"decathlonminds/internal/cache"
	"decathlonminds/internal/config"
	"decathlonminds/internal/core"
	"decathlonminds/internal/feed"
	"decathlonminds/internal/images"
)

type fakeGenerator struct{}

func (fakeGenerator) GeneratePost(ctx context.Context, kind core.Kind, moodToken, reasonToken string) (core.Item, error) {
	switch kind {
	case core.KindQuote:
		return &core.QuoteItem{ID: "q1", Text: "a quote"}, nil
	case core.KindRoute:
		return &core.RouteItem{ID: "r1", Title: "a route", Location: "here"}, nil
	case core.KindEvent:
		return &core.EventItem{ID: "e1", Title: "an event"}, nil
	default:
		return &core.ScientificItem{ID: "s1", Title: "science", Body: "walking helps"}, nil
	}
}

type fakeSource struct {
	articles []core.Article
	err      error
}

func (f fakeSource) FetchAll(ctx context.Context, urls []string) ([]core.Article, error) {
	return f.articles, f.err
}

func newTestServer(source feed.ArticleSource) *Server {
	c := cache.New(30 * time.Minute)
	assembler := feed.NewAssembler(fakeGenerator{}, source, c, images.NewSelector(), nil,
		config.AssemblyConfig{DefaultCount: 8, MaxCount: 20, ItemTimeout: time.Second})
	return New(assembler, c, config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(fakeSource{})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status field = %q", resp.Status)
	}
}

func TestGetFeed(t *testing.T) {
	srv := newTestServer(fakeSource{})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feed?mood=HAPPY&count=4", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Items  []json.RawMessage `json:"items"`
		Count  int               `json:"count"`
		Mood   string            `json:"mood"`
		Reason string            `json:"reason"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 4 || len(resp.Items) != 4 {
		t.Errorf("count = %d, items = %d", resp.Count, len(resp.Items))
	}
	if resp.Mood != "HAPPY" {
		t.Errorf("mood = %q", resp.Mood)
	}

	// Every item carries the kind discriminator.
	for i, raw := range resp.Items {
		var probe struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if probe.Kind == "" {
			t.Errorf("item %d has no kind", i)
		}
	}
}

func TestGetFeedRejectsBadCount(t *testing.T) {
	srv := newTestServer(fakeSource{})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feed?count=lots", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPostFeed(t *testing.T) {
	srv := newTestServer(fakeSource{})
	body, _ := json.Marshal(feed.Request{Mood: "Énervé", Count: 4})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/feed", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Mood string `json:"mood"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Mood != "ANGRY" {
		t.Errorf("mood = %q, want canonical ANGRY", resp.Mood)
	}
}

func TestPostFeedRejectsBadJSON(t *testing.T) {
	srv := newTestServer(fakeSource{})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/feed", bytes.NewReader([]byte("{"))))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestArticlesEndpoint(t *testing.T) {
	srv := newTestServer(fakeSource{articles: []core.Article{
		{ID: "a1", Title: "Walking and mood", Description: "a walk improves wellbeing"},
	}})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles?mood=HAPPY", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Items []json.RawMessage `json:"items"`
		Count int               `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
	for i, raw := range resp.Items {
		var probe struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if probe.Kind != string(core.KindScientific) {
			t.Errorf("item %d kind = %q, want %q", i, probe.Kind, core.KindScientific)
		}
	}
}

func TestArticlesEndpointBadGateway(t *testing.T) {
	srv := newTestServer(fakeSource{err: errors.New("boom")})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestImageCheckRequiresURL(t *testing.T) {
	srv := newTestServer(fakeSource{})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/check", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestImageCheckProbesURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	srv := newTestServer(fakeSource{})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/check?url="+upstream.URL, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		IsAccessible bool `json:"isAccessible"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsAccessible {
		t.Error("expected the upstream to be accessible")
	}
}
