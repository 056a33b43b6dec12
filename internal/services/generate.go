package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/generative-ai-go/genai"
  "google.golang.org/api/option"

  "github.com/0CyberGhost0/BotIo/internal/apperr"
  "github.com/0CyberGhost0/BotIo/internal/logger"
)

const defaultGenModel = "gemini-2.0-flash"

// Generator produces one assistant reply from a system prompt and the
// latest user message. The conversation manager sends exactly these
// two turns; prior messages are not replayed.
type Generator interface {
  Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type geminiService struct {
  log       *logger.Logger
  client    *genai.Client
  modelName string
}

func NewGeminiService(ctx context.Context, baseLog *logger.Logger, apiKey, modelName string) (Generator, error) {
  serviceLog := baseLog.With("service", "GeminiService")
  if apiKey == "" {
    return nil, fmt.Errorf("missing GEMINI_API_KEY environment variable")
  }
  client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
  if err != nil {
    return nil, fmt.Errorf("create genai client: %w", err)
  }
  if modelName == "" {
    modelName = defaultGenModel
  }
  return &geminiService{log: serviceLog, client: client, modelName: modelName}, nil
}

func (gs *geminiService) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
  m := gs.client.GenerativeModel(gs.modelName)
  if systemPrompt != "" {
    m.SystemInstruction = &genai.Content{
      Parts: []genai.Part{genai.Text(systemPrompt)},
    }
  }
  resp, err := m.GenerateContent(ctx, genai.Text(userMessage))
  if err != nil {
    gs.log.Warn("gemini generate failed", "error", err)
    return "", apperr.Wrap(apperr.KindUpstream, err, "generation failed")
  }
  if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
    return "", nil
  }
  var b strings.Builder
  for _, p := range resp.Candidates[0].Content.Parts {
    if t, ok := p.(genai.Text); ok {
      b.WriteString(string(t))
    }
  }
  return b.String(), nil
}
