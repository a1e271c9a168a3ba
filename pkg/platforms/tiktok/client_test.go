package tiktok

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkessel/trendmap/pkg/httputil"
)

func TestClient_FetchTrending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/post/trending" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("missing RapidAPI key, got %q", got)
		}
		if got := r.URL.Query().Get("region"); got != "ZA" {
			t.Errorf("expected region ZA, got %q", got)
		}
		resp := apiResponse{
			ItemList: []apiItem{
				{
					Desc:  "amapiano dance challenge",
					Video: apiVideo{Cover: "https://img.example/cover.jpg"},
					Stats: apiStats{PlayCount: 1200000, DiggCount: 84000},
				},
				{Desc: ""}, // deleted post, no caption
				{
					Desc:  "Amapiano Dance Challenge",
					Stats: apiStats{PlayCount: 900},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	candidates, err := c.FetchTrending(context.Background(), "ZA", true)
	if err != nil {
		t.Fatalf("FetchTrending failed: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate after dedupe, got %d", len(candidates))
	}
	first := candidates[0]
	if first.Name != "amapiano dance challenge" {
		t.Errorf("expected caption as name, got %q", first.Name)
	}
	if first.Source != Source {
		t.Errorf("expected source %q, got %q", Source, first.Source)
	}
	if first.Image != "https://img.example/cover.jpg" {
		t.Errorf("unexpected image %q", first.Image)
	}
	if first.Metrics.Plays != 1200000 {
		t.Errorf("expected play count in metrics, got %d", first.Metrics.Plays)
	}
	if first.Metrics.Views != 84000 {
		t.Errorf("expected digg count in metrics, got %d", first.Metrics.Views)
	}
}

func TestClient_FetchTrending_DefaultRegion(t *testing.T) {
	var region string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		region = r.URL.Query().Get("region")
		json.NewEncoder(w).Encode(apiResponse{})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	if _, err := c.FetchTrending(context.Background(), "", true); err != nil {
		t.Fatalf("FetchTrending failed: %v", err)
	}
	if region != DefaultRegion {
		t.Errorf("empty region should default to %s, requested %q", DefaultRegion, region)
	}
}

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(cache, "test-key")
	c.baseURL = serverURL
	return c
}
