package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"GalaPilot/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "advisor")

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini obtains trade decisions from the Gemini generateContent API. No
// retry is attempted within a run: a failed or unparseable reply aborts the
// decision and defers to the next scheduled invocation.
type Gemini struct {
	client *resty.Client
	model  string
}

// NewGemini creates an advisor using the given model.
func NewGemini(apiKey, modelName string) *Gemini {
	client := resty.New().
		SetBaseURL(geminiBaseURL).
		SetTimeout(2 * time.Minute).
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("Content-Type", "application/json")
	return &Gemini{client: client, model: modelName}
}

// RequestDecision sends the prompt and parses the reply into a decision.
func (g *Gemini) RequestDecision(ctx context.Context, prompt string) (*model.Decision, error) {
	reply, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseDecision(reply)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	log.Infof("requesting decision from %s", g.model)
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("generate content: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("generate content: no candidates in response")
	}

	var b strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("generate content: empty reply")
	}
	return b.String(), nil
}
