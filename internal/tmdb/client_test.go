package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"watchlog/internal/tmdb"
)

func TestNewRequiresAccessToken(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when access token missing")
	}
}

func TestSearchMultiSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Fatalf("expected bearer auth header, got %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "de-DE" {
			t.Fatalf("expected language query parameter, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":42,"name":"Prison Break","media_type":"tv"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("token", server.URL, "de-DE")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	resp, err := client.SearchMulti(context.Background(), "Prison Break")
	if err != nil {
		t.Fatalf("SearchMulti returned error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 42 {
		t.Fatalf("unexpected response: %#v", resp)
	}
	if resp.Results[0].DisplayTitle() != "Prison Break" {
		t.Fatalf("unexpected display title: %q", resp.Results[0].DisplayTitle())
	}
}

func TestSearchMovieEmptyQuery(t *testing.T) {
	client, err := tmdb.New("token", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestUnauthorizedSurfacesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("bad", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.SearchTV(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	var statusErr *tmdb.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if !statusErr.Unauthorized() {
		t.Fatalf("expected unauthorized status, got code %d", statusErr.Code)
	}
	if statusErr.Message != "Invalid API key" {
		t.Fatalf("expected decoded status message, got %q", statusErr.Message)
	}
}

func TestServerErrorSurfacesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("token", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.SearchMovie(context.Background(), "fail")
	var statusErr *tmdb.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.Unauthorized() {
		t.Fatal("500 must not classify as unauthorized")
	}
}

func TestGetShowDetailsReturnsSeasonList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/42" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"name":"Prison Break","seasons":[
			{"id":100,"name":"Specials","season_number":0,"episode_count":3},
			{"id":101,"name":"Season 1","season_number":1,"episode_count":22}
		]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("token", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	details, err := client.GetShowDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetShowDetails returned error: %v", err)
	}
	if len(details.Seasons) != 2 || details.Seasons[1].SeasonNumber != 1 {
		t.Fatalf("unexpected seasons: %#v", details.Seasons)
	}
}

func TestGetSeasonDetailsAllowsSpecials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/42/season/0" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"Specials","season_number":0,"episodes":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("token", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.GetSeasonDetails(context.Background(), 42, 0); err != nil {
		t.Fatalf("GetSeasonDetails returned error: %v", err)
	}
	if _, err := client.GetSeasonDetails(context.Background(), 42, -1); err == nil {
		t.Fatal("expected error for negative season number")
	}
}
