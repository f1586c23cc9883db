package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"google.golang.org/genai"
)

var errEmptyResponse = errors.New("empty response from model")

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a Gemini API client. An empty apiKey lets the SDK
// fall back to GOOGLE_API_KEY/GEMINI_API_KEY from the environment.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, req Request) (string, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(req.User),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return "", fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("[PLANNER] Raw Gemini response:\n%s", raw)

	if strings.TrimSpace(raw) == "" {
		return "", errEmptyResponse
	}
	return raw, nil
}
