package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/agentic-quiz/internal/question"
)

func newServer(t *testing.T, status int, body string, seen *generateRequest) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("x-goog-api-key"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(url string) *Gemini {
	return NewGemini(Config{APIKey: "key-123", Model: "models/gemini-test", BaseURL: url, Temperature: 0.4}, zerolog.Nop())
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	var seen generateRequest
	srv := newServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"[{\"question\":"},{"text":"\"Q\"}]"}]}}]}`, &seen)

	text, err := newClient(srv.URL).Generate(context.Background(), "make questions")

	require.NoError(t, err)
	assert.Equal(t, `[{"question":"Q"}]`, text)
	require.Len(t, seen.Contents, 1)
	assert.Equal(t, "make questions", seen.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.4, seen.GenerationConfig["temperature"])
}

func TestGenerateErrors(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"server error":  {http.StatusInternalServerError, `{"error":{"message":"boom"}}`},
		"bad json":      {http.StatusOK, `{"candidates":`},
		"no candidates": {http.StatusOK, `{"candidates":[]}`},
		"blank text":    {http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`},
		"blocked":       {http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newServer(t, tc.status, tc.body, nil)
			_, err := newClient(srv.URL).Generate(context.Background(), "p")
			assert.Error(t, err)
		})
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	g := NewGemini(Config{}, zerolog.Nop())
	_, err := g.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, question.ErrGeneratorUnavailable)
}

func TestGeminiFeedsQuestionService(t *testing.T) {
	reply := "```json\n[{\"question\":\"Q1\",\"options\":[\"A\",\"B\"],\"answer\":\"A\"}]\n```"
	body, err := json.Marshal(generateResponse{Candidates: []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	}{{Content: content{Parts: []part{{Text: reply}}}, FinishReason: "STOP"}}})
	require.NoError(t, err)
	srv := newServer(t, http.StatusOK, string(body), nil)

	svc := question.NewService(newClient(srv.URL), nil, zerolog.Nop())
	res := svc.Fetch(context.Background(), "Agentic AI", 1)

	require.NoError(t, res.Err)
	assert.False(t, res.Fallback)
	assert.Equal(t, "Q1", res.Questions[0].Prompt)
}
