package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemini_Complete(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"the answer"}]}}]}`)
	}))
	defer srv.Close()

	g := &Gemini{APIKey: "secret", Model: "gemini-2.5-pro", BaseURL: srv.URL}
	text, err := g.Complete(context.Background(), "the question")
	require.NoError(t, err)

	assert.Equal(t, "the answer", text)
	assert.Equal(t, "/v1beta/models/gemini-2.5-pro:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "the question", gotBody.Contents[0].Parts[0].Text)
}

func TestGemini_Complete_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		g := &Gemini{}
		_, err := g.Complete(context.Background(), "q")
		require.Error(t, err)
	})

	t.Run("upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		g := &Gemini{APIKey: "secret", BaseURL: srv.URL}
		_, err := g.Complete(context.Background(), "q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("no candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"candidates":[]}`)
		}))
		defer srv.Close()

		g := &Gemini{APIKey: "secret", BaseURL: srv.URL}
		_, err := g.Complete(context.Background(), "q")
		require.Error(t, err)
	})
}

func TestStripFences(t *testing.T) {
	tts := []struct {
		in   string
		want string
	}{
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "  plain text  ", want: "plain text"},
	}

	for _, tt := range tts {
		assert.Equal(t, tt.want, stripFences(tt.in))
	}
}
