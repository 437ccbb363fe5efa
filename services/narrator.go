package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"antworld/models"
)

// Narrator turns a looked-at entity into the text shown by the UI
type Narrator interface {
	Describe(ctx context.Context, e models.Entity, base string) (string, error)
}

// StaticNarrator returns the entity's own description unchanged
type StaticNarrator struct{}

func (StaticNarrator) Describe(_ context.Context, _ models.Entity, base string) (string, error) {
	return base, nil
}

// contentGenerator is the part of the genai client the narrator needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiNarrator asks a Gemini model for a one-sentence description
type GeminiNarrator struct {
	models      contentGenerator
	model       string
	temperature float32
}

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// NewGeminiNarrator creates a narrator backed by the Gemini API
func NewGeminiNarrator(ctx context.Context, apiKey, model string) (*GeminiNarrator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini narrator needs an API key")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}

	return &GeminiNarrator{models: client.Models, model: model, temperature: 0.7}, nil
}

func (n *GeminiNarrator) prompt(e models.Entity, base string) string {
	return fmt.Sprintf(
		"You narrate a tiny world seen by an ant. In one short sentence, describe the %s at %s. Plain facts: %s",
		e.Kind, e.Pos, base)
}

// Describe returns the model's sentence, or an error when the call fails
func (n *GeminiNarrator) Describe(ctx context.Context, e models.Entity, base string) (string, error) {
	result, err := n.models.GenerateContent(
		ctx,
		n.model,
		genai.Text(n.prompt(e, base)),
		&genai.GenerateContentConfig{
			Temperature: &n.temperature,
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate description")
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		log.Printf("Gemini returned no text for %s, using plain description", e.Kind)
		return base, nil
	}
	return text, nil
}
