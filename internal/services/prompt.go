package services

import (
  "context"
  "errors"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/apperr"
  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/repos"
)

// promptPreamble is the fixed instructional text prepended to every
// assembled system prompt.
const promptPreamble = "You are a helpful and intelligent assistant trained on users' data, including their documents, conversations, preferences, and history. " +
  "Based on this knowledge, respond to the following query as accurately and contextually as possible. " +
  "If the information is not available in the data, admit it clearly. Always prioritize personalized and concise replies.\n\n"

// sourceSeparator sits between consecutive source blocks.
const sourceSeparator = "\n\n----- Next Source -----\n\n"

type PromptService interface {
  // BuildSystemPrompt assembles the bot's grounding context: the
  // preamble followed by every source block in insertion order. Given
  // an unchanged set of sources the result is byte-identical across
  // calls.
  BuildSystemPrompt(ctx context.Context, botID uuid.UUID) (string, error)
}

type promptService struct {
  db         *gorm.DB
  log        *logger.Logger
  botRepo    repos.BotRepo
  sourceRepo repos.SourceRepo
  cache      PromptCache
}

// NewPromptService builds the prompt assembler. cache may be nil, in
// which case every call reads from the store.
func NewPromptService(db *gorm.DB, baseLog *logger.Logger, botRepo repos.BotRepo, sourceRepo repos.SourceRepo, cache PromptCache) PromptService {
  return &promptService{
    db:         db,
    log:        baseLog.With("service", "PromptService"),
    botRepo:    botRepo,
    sourceRepo: sourceRepo,
    cache:      cache,
  }
}

func (ps *promptService) BuildSystemPrompt(ctx context.Context, botID uuid.UUID) (string, error) {
  if ps.cache != nil {
    if prompt, ok := ps.cache.Get(ctx, botID); ok {
      return prompt, nil
    }
  }
  if _, err := ps.botRepo.GetByID(ctx, nil, botID); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return "", apperr.Newf(apperr.KindNotFound, "bot %s not found", botID)
    }
    return "", err
  }
  sources, err := ps.sourceRepo.GetByBotID(ctx, nil, botID)
  if err != nil {
    return "", err
  }
  blocks := make([]string, 0, len(sources))
  for _, source := range sources {
    blocks = append(blocks, "Source ("+string(source.Type)+"): "+source.Content)
  }
  prompt := promptPreamble + strings.Join(blocks, sourceSeparator)
  if ps.cache != nil {
    ps.cache.Set(ctx, botID, prompt)
  }
  return prompt, nil
}
