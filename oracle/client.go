package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Oracle is the text-completion service behind duplicate detection and
// summarization. It is a black box: prompt in, text out.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-pro"

// Gemini talks to the Google Generative Language API.
type Gemini struct {
	APIKey string
	Model  string
	Client HTTPClient

	// BaseURL overrides the API host, for tests.
	BaseURL string
}

const geminiBaseURL = "https://generativelanguage.googleapis.com"

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt and returns the first candidate's text.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if g.APIKey == "" {
		return "", fmt.Errorf("no api key configured")
	}

	model := g.Model
	if model == "" {
		model = DefaultModel
	}
	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %v", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling oracle: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("oracle returned %d: %s", res.StatusCode, string(data))
	}

	var gres geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&gres); err != nil {
		return "", fmt.Errorf("decoding oracle response: %v", err)
	}

	if len(gres.Candidates) == 0 || len(gres.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("oracle returned no candidates")
	}

	return gres.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences removes the markdown code fences models like to wrap JSON
// answers in.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
