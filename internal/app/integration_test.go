//go:build integration
// +build integration

package app_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 30 * time.Second}
}

func fetch(t *testing.T, client *http.Client, method, target string, form url.Values) string {
	t.Helper()
	var resp *http.Response
	var err error
	if method == http.MethodPost {
		resp, err = client.PostForm(target, form)
	} else {
		resp, err = client.Get(target)
	}
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s %s: unexpected status %d: %s", method, target, resp.StatusCode, body)
	}
	return string(body)
}

func TestHealthz(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	resp, err := http.Get(fmt.Sprintf("%s/healthz", baseURL))
	if err != nil {
		t.Fatalf("health check request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}

// TestPlayThroughForms answers every question with its first option, then
// checks the score landed on the leaderboard.
func TestPlayThroughForms(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	client := newBrowser(t)
	name := fmt.Sprintf("Integration %d", time.Now().UnixNano())

	fetch(t, client, http.MethodGet, baseURL+"/", nil)
	page := fetch(t, client, http.MethodPost, baseURL+"/start", url.Values{"name": {name}})

	for i := 0; i < 10 && strings.Contains(page, `action="/answer"`); i++ {
		start := strings.Index(page, `name="choice" value="`)
		if start < 0 {
			t.Fatalf("no options on question page")
		}
		rest := page[start+len(`name="choice" value="`):]
		choice := rest[:strings.Index(rest, `"`)]
		page = fetch(t, client, http.MethodPost, baseURL+"/answer", url.Values{"choice": {choice}})
	}
	if !strings.Contains(page, "You scored") {
		t.Fatalf("quiz did not finish")
	}

	resp, err := client.Get(baseURL + "/v1/leaderboard")
	if err != nil {
		t.Fatalf("leaderboard request failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Entries []struct {
			Name string `json:"name"`
		} `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	for _, e := range out.Entries {
		if e.Name == name {
			return
		}
	}
	t.Fatalf("%q missing from leaderboard", name)
}
