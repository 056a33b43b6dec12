package services

import (
  "context"
  "errors"
  "sync"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/apperr"
  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/repos"
  "github.com/0CyberGhost0/BotIo/internal/requestdata"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

type ChatService interface {
  // Authenticated surface. The caller's identity comes from
  // requestdata on the context.
  CreateChat(ctx context.Context, botID uuid.UUID) (*types.Chat, error)
  GetUserChats(ctx context.Context) ([]types.Chat, error)
  GetChat(ctx context.Context, chatID uuid.UUID) (*types.Chat, error)
  PostMessage(ctx context.Context, chatID, botID uuid.UUID, content string) (*types.ChatMessage, *types.ChatMessage, error)

  // Public embed surface. No identity, no usage accounting.
  CreateEmbeddedChat(ctx context.Context, botID uuid.UUID) (*types.Chat, error)
  PostEmbeddedMessage(ctx context.Context, chatID, botID uuid.UUID, content string) (*types.ChatMessage, *types.ChatMessage, error)
}

type chatService struct {
  db        *gorm.DB
  log       *logger.Logger
  botRepo   repos.BotRepo
  chatRepo  repos.ChatRepo
  msgRepo   repos.ChatMessageRepo
  usageRepo repos.UserUsageRepo
  prompts   PromptService
  generator Generator

  // chatLocks serializes message posting per chat so two concurrent
  // posts cannot interleave their user/assistant message pairs.
  mu        sync.Mutex
  chatLocks map[uuid.UUID]*sync.Mutex
}

func NewChatService(db *gorm.DB, baseLog *logger.Logger, botRepo repos.BotRepo, chatRepo repos.ChatRepo, msgRepo repos.ChatMessageRepo, usageRepo repos.UserUsageRepo, prompts PromptService, generator Generator) ChatService {
  return &chatService{
    db:        db,
    log:       baseLog.With("service", "ChatService"),
    botRepo:   botRepo,
    chatRepo:  chatRepo,
    msgRepo:   msgRepo,
    usageRepo: usageRepo,
    prompts:   prompts,
    generator: generator,
    chatLocks: make(map[uuid.UUID]*sync.Mutex),
  }
}

func (cs *chatService) chatLock(chatID uuid.UUID) *sync.Mutex {
  cs.mu.Lock()
  defer cs.mu.Unlock()
  lock, ok := cs.chatLocks[chatID]
  if !ok {
    lock = &sync.Mutex{}
    cs.chatLocks[chatID] = lock
  }
  return lock
}

func (cs *chatService) CreateChat(ctx context.Context, botID uuid.UUID) (*types.Chat, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, apperr.New(apperr.KindForbidden, "no authenticated user")
  }
  bot, err := cs.requireBot(ctx, botID)
  if err != nil {
    return nil, err
  }
  userID := rd.UserID
  chat := &types.Chat{
    BotID:  botID,
    UserID: &userID,
  }
  if chat, err = cs.chatRepo.Create(ctx, nil, chat); err != nil {
    return nil, err
  }
  chat.Bot = bot
  return chat, nil
}

func (cs *chatService) GetUserChats(ctx context.Context) ([]types.Chat, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, apperr.New(apperr.KindForbidden, "no authenticated user")
  }
  return cs.chatRepo.GetUserChats(ctx, nil, rd.UserID)
}

func (cs *chatService) GetChat(ctx context.Context, chatID uuid.UUID) (*types.Chat, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, apperr.New(apperr.KindForbidden, "no authenticated user")
  }
  chat, err := cs.chatRepo.GetByIDWithMessages(ctx, nil, chatID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.Newf(apperr.KindNotFound, "chat %s not found", chatID)
    }
    return nil, err
  }
  if chat.UserID == nil || *chat.UserID != rd.UserID {
    return nil, apperr.New(apperr.KindForbidden, "not authorized to access this chat")
  }
  return chat, nil
}

// PostMessage persists the user's turn, generates the assistant reply
// grounded in the bot's assembled system prompt, and persists that
// reply. The user message is durable before the generation call runs;
// if generation fails the user turn stays, visibly unanswered.
func (cs *chatService) PostMessage(ctx context.Context, chatID, botID uuid.UUID, content string) (*types.ChatMessage, *types.ChatMessage, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, nil, apperr.New(apperr.KindForbidden, "no authenticated user")
  }
  if content == "" {
    return nil, nil, apperr.New(apperr.KindValidation, "message content is required")
  }

  lock := cs.chatLock(chatID)
  lock.Lock()
  defer lock.Unlock()

  chat, err := cs.chatRepo.GetByID(ctx, nil, chatID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil, apperr.Newf(apperr.KindNotFound, "chat %s not found", chatID)
    }
    return nil, nil, err
  }
  if chat.UserID == nil || *chat.UserID != rd.UserID {
    return nil, nil, apperr.New(apperr.KindForbidden, "not authorized to access this chat")
  }

  userMsg, assistantMsg, err := cs.exchange(ctx, chat, botID, content)
  if err != nil {
    return nil, nil, err
  }
  if err := cs.usageRepo.Increment(ctx, nil, rd.UserID, repos.UsageResponsesUsed, 1); err != nil {
    cs.log.Warn("failed to increment responsesUsed", "userID", rd.UserID, "error", err)
  }
  return userMsg, assistantMsg, nil
}

func (cs *chatService) CreateEmbeddedChat(ctx context.Context, botID uuid.UUID) (*types.Chat, error) {
  bot, err := cs.requireBot(ctx, botID)
  if err != nil {
    return nil, err
  }
  chat := &types.Chat{
    BotID:      botID,
    UserID:     nil,
    IsEmbedded: true,
  }
  if chat, err = cs.chatRepo.Create(ctx, nil, chat); err != nil {
    return nil, err
  }
  chat.Bot = bot
  return chat, nil
}

// PostEmbeddedMessage is PostMessage for anonymous embed sessions:
// the chat must be embedded, there is no ownership check, and
// responsesUsed is not incremented.
func (cs *chatService) PostEmbeddedMessage(ctx context.Context, chatID, botID uuid.UUID, content string) (*types.ChatMessage, *types.ChatMessage, error) {
  if content == "" {
    return nil, nil, apperr.New(apperr.KindValidation, "message content is required")
  }

  lock := cs.chatLock(chatID)
  lock.Lock()
  defer lock.Unlock()

  chat, err := cs.chatRepo.GetByID(ctx, nil, chatID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil, apperr.Newf(apperr.KindNotFound, "chat %s not found", chatID)
    }
    return nil, nil, err
  }
  if !chat.IsEmbedded {
    return nil, nil, apperr.Newf(apperr.KindNotFound, "chat %s not found", chatID)
  }
  return cs.exchange(ctx, chat, botID, content)
}

// exchange runs one user/assistant turn pair. The generation call
// sees exactly two turns: the assembled system prompt and the new
// user content. Prior messages stay persisted and rendered but are
// not replayed into the model context.
func (cs *chatService) exchange(ctx context.Context, chat *types.Chat, botID uuid.UUID, content string) (*types.ChatMessage, *types.ChatMessage, error) {
  userMsg := &types.ChatMessage{
    ChatID:  chat.ID,
    Role:    types.RoleUser,
    Content: content,
  }
  userMsg, err := cs.msgRepo.Create(ctx, nil, userMsg)
  if err != nil {
    return nil, nil, err
  }

  prompt, err := cs.prompts.BuildSystemPrompt(ctx, botID)
  if err != nil {
    return nil, nil, err
  }
  reply, err := cs.generator.Generate(ctx, prompt, content)
  if err != nil {
    // The user turn is already durable; it is not rolled back.
    return nil, nil, apperr.Wrap(apperr.KindUpstream, err, "failed to generate response")
  }

  assistantMsg := &types.ChatMessage{
    ChatID:  chat.ID,
    Role:    types.RoleAssistant,
    Content: reply,
  }
  assistantMsg, err = cs.msgRepo.Create(ctx, nil, assistantMsg)
  if err != nil {
    return nil, nil, err
  }
  if err := cs.chatRepo.TouchUpdatedAt(ctx, nil, chat.ID); err != nil {
    cs.log.Warn("failed to touch chat updatedAt", "chatID", chat.ID, "error", err)
  }
  return userMsg, assistantMsg, nil
}

func (cs *chatService) requireBot(ctx context.Context, botID uuid.UUID) (*types.Bot, error) {
  bot, err := cs.botRepo.GetByID(ctx, nil, botID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.Newf(apperr.KindNotFound, "bot %s not found", botID)
    }
    return nil, err
  }
  return bot, nil
}
