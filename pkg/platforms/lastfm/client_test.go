package lastfm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkessel/trendmap/pkg/httputil"
)

func TestClient_FetchTopArtists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("method"); got != "chart.gettopartists" {
			t.Errorf("expected method chart.gettopartists, got %q", got)
		}
		var resp topArtistsResponse
		resp.Artists.Artist = []apiArtist{
			{Name: "Tyla", Playcount: "98000000", Listeners: "2400000"},
			{Name: "", Playcount: "1"},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	candidates, err := c.FetchTopArtists(context.Background(), 0, true)
	if err != nil {
		t.Fatalf("FetchTopArtists failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	got := candidates[0]
	if got.Name != "Tyla" || got.Source != Source {
		t.Errorf("unexpected candidate %+v", got)
	}
	if got.Metrics.Plays != 98_000_000 || got.Metrics.Followers != 2_400_000 {
		t.Errorf("unexpected metrics %+v", got.Metrics)
	}
}

func TestClient_FetchTopTracks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp topTracksResponse
		track := apiTrack{Name: "Push 2 Start", Playcount: "5000000", Listeners: "800000"}
		track.Artist.Name = "Tyla"
		resp.Tracks.Track = []apiTrack{track}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	candidates, err := c.FetchTopTracks(context.Background(), 10, true)
	if err != nil {
		t.Fatalf("FetchTopTracks failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Name != "Tyla - Push 2 Start" {
		t.Errorf("expected joined artist-title name, got %q", candidates[0].Name)
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
