package services

import (
  "context"
  "errors"
  "strings"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/apperr"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

func newChatFixture(t *testing.T, generator Generator) (*testStore, ChatService, *types.Bot) {
  t.Helper()
  ts := newTestStore(t)
  bot := ts.createBot(t, "user-1")
  prompts := NewPromptService(ts.db, ts.log, ts.botRepo, ts.sourceRepo, nil)
  svc := NewChatService(ts.db, ts.log, ts.botRepo, ts.chatRepo, ts.msgRepo, ts.usageRepo, prompts, generator)
  return ts, svc, bot
}

func TestPostMessage_exchange(t *testing.T) {
  generator := &stubGenerator{reply: "Hello back"}
  ts, svc, bot := newChatFixture(t, generator)
  ctx := authedCtx("user-1")

  chat, err := svc.CreateChat(ctx, bot.ID)
  if err != nil {
    t.Fatalf("CreateChat: %v", err)
  }
  userMsg, assistantMsg, err := svc.PostMessage(ctx, chat.ID, bot.ID, "Hi")
  if err != nil {
    t.Fatalf("PostMessage: %v", err)
  }
  if userMsg.Role != types.RoleUser || userMsg.Content != "Hi" {
    t.Errorf("user turn = (%s, %q)", userMsg.Role, userMsg.Content)
  }
  if assistantMsg.Role != types.RoleAssistant || assistantMsg.Content != "Hello back" {
    t.Errorf("assistant turn = (%s, %q)", assistantMsg.Role, assistantMsg.Content)
  }

  msgs, err := ts.msgRepo.GetByChatID(context.Background(), nil, chat.ID)
  if err != nil {
    t.Fatalf("GetByChatID: %v", err)
  }
  if len(msgs) != 2 {
    t.Fatalf("persisted %d messages, want 2", len(msgs))
  }
  if msgs[0].Role != types.RoleUser || msgs[1].Role != types.RoleAssistant {
    t.Errorf("message order = [%s, %s]", msgs[0].Role, msgs[1].Role)
  }

  if len(generator.calls) != 1 {
    t.Fatalf("generator called %d times, want 1", len(generator.calls))
  }
  call := generator.calls[0]
  if !strings.HasPrefix(call.systemPrompt, promptPreamble) {
    t.Errorf("system prompt missing preamble: %q", call.systemPrompt)
  }
  if call.userMessage != "Hi" {
    t.Errorf("user message = %q", call.userMessage)
  }

  usage, err := ts.usageRepo.GetByUserID(context.Background(), nil, "user-1")
  if err != nil {
    t.Fatalf("GetByUserID: %v", err)
  }
  if usage.ResponsesUsed != 1 {
    t.Errorf("responsesUsed = %d, want 1", usage.ResponsesUsed)
  }
}

func TestPostMessage_noHistoryReplay(t *testing.T) {
  generator := &stubGenerator{reply: "first answer"}
  _, svc, bot := newChatFixture(t, generator)
  ctx := authedCtx("user-1")

  chat, err := svc.CreateChat(ctx, bot.ID)
  if err != nil {
    t.Fatalf("CreateChat: %v", err)
  }
  if _, _, err := svc.PostMessage(ctx, chat.ID, bot.ID, "first question"); err != nil {
    t.Fatalf("PostMessage: %v", err)
  }
  if _, _, err := svc.PostMessage(ctx, chat.ID, bot.ID, "second question"); err != nil {
    t.Fatalf("PostMessage: %v", err)
  }
  if len(generator.calls) != 2 {
    t.Fatalf("generator called %d times, want 2", len(generator.calls))
  }
  second := generator.calls[1]
  if second.userMessage != "second question" {
    t.Errorf("user message = %q", second.userMessage)
  }
  if strings.Contains(second.systemPrompt, "first question") || strings.Contains(second.systemPrompt, "first answer") {
    t.Errorf("prior turns leaked into the model context: %q", second.systemPrompt)
  }
}

func TestPostMessage_forbiddenForOtherUser(t *testing.T) {
  generator := &stubGenerator{reply: "ok"}
  ts, svc, bot := newChatFixture(t, generator)

  chat, err := svc.CreateChat(authedCtx("user-1"), bot.ID)
  if err != nil {
    t.Fatalf("CreateChat: %v", err)
  }
  _, _, err = svc.PostMessage(authedCtx("user-2"), chat.ID, bot.ID, "Hi")
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := apperr.KindOf(err); kind != apperr.KindForbidden {
    t.Errorf("kind = %v, want KindForbidden", kind)
  }
  msgs, err := ts.msgRepo.GetByChatID(context.Background(), nil, chat.ID)
  if err != nil {
    t.Fatalf("GetByChatID: %v", err)
  }
  if len(msgs) != 0 {
    t.Errorf("persisted %d messages, want 0", len(msgs))
  }
  if len(generator.calls) != 0 {
    t.Errorf("generator called %d times, want 0", len(generator.calls))
  }
}

func TestPostMessage_requiresIdentityAndContent(t *testing.T) {
  _, svc, bot := newChatFixture(t, &stubGenerator{reply: "ok"})

  _, _, err := svc.PostMessage(context.Background(), uuid.New(), bot.ID, "Hi")
  if kind := apperr.KindOf(err); kind != apperr.KindForbidden {
    t.Errorf("kind = %v, want KindForbidden", kind)
  }
  _, _, err = svc.PostMessage(authedCtx("user-1"), uuid.New(), bot.ID, "")
  if kind := apperr.KindOf(err); kind != apperr.KindValidation {
    t.Errorf("kind = %v, want KindValidation", kind)
  }
}

func TestPostMessage_generationFailureKeepsUserTurn(t *testing.T) {
  generator := &stubGenerator{err: errors.New("model unavailable")}
  ts, svc, bot := newChatFixture(t, generator)
  ctx := authedCtx("user-1")

  chat, err := svc.CreateChat(ctx, bot.ID)
  if err != nil {
    t.Fatalf("CreateChat: %v", err)
  }
  _, _, err = svc.PostMessage(ctx, chat.ID, bot.ID, "Hi")
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := apperr.KindOf(err); kind != apperr.KindUpstream {
    t.Errorf("kind = %v, want KindUpstream", kind)
  }
  msgs, err := ts.msgRepo.GetByChatID(context.Background(), nil, chat.ID)
  if err != nil {
    t.Fatalf("GetByChatID: %v", err)
  }
  if len(msgs) != 1 || msgs[0].Role != types.RoleUser {
    t.Fatalf("persisted %d messages, want the user turn only", len(msgs))
  }
  if _, usageErr := ts.usageRepo.GetByUserID(context.Background(), nil, "user-1"); !errors.Is(usageErr, gorm.ErrRecordNotFound) {
    t.Errorf("expected no usage row, got %v", usageErr)
  }
}

func TestEmbeddedChat_flow(t *testing.T) {
  generator := &stubGenerator{reply: "embedded reply"}
  ts, svc, bot := newChatFixture(t, generator)

  chat, err := svc.CreateEmbeddedChat(context.Background(), bot.ID)
  if err != nil {
    t.Fatalf("CreateEmbeddedChat: %v", err)
  }
  if !chat.IsEmbedded || chat.UserID != nil {
    t.Errorf("chat = {IsEmbedded: %v, UserID: %v}", chat.IsEmbedded, chat.UserID)
  }
  userMsg, assistantMsg, err := svc.PostEmbeddedMessage(context.Background(), chat.ID, bot.ID, "Hi there")
  if err != nil {
    t.Fatalf("PostEmbeddedMessage: %v", err)
  }
  if userMsg.Content != "Hi there" || assistantMsg.Content != "embedded reply" {
    t.Errorf("turns = (%q, %q)", userMsg.Content, assistantMsg.Content)
  }

  // Anonymous sessions are never billed.
  var count int64
  if err := ts.db.Model(&types.UserUsage{}).Count(&count).Error; err != nil {
    t.Fatalf("count usage rows: %v", err)
  }
  if count != 0 {
    t.Errorf("usage rows = %d, want 0", count)
  }
}

func TestPostEmbeddedMessage_rejectsOwnedChat(t *testing.T) {
  _, svc, bot := newChatFixture(t, &stubGenerator{reply: "ok"})

  chat, err := svc.CreateChat(authedCtx("user-1"), bot.ID)
  if err != nil {
    t.Fatalf("CreateChat: %v", err)
  }
  _, _, err = svc.PostEmbeddedMessage(context.Background(), chat.ID, bot.ID, "Hi")
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := apperr.KindOf(err); kind != apperr.KindNotFound {
    t.Errorf("kind = %v, want KindNotFound", kind)
  }
}

func TestGetChat_scopedToOwner(t *testing.T) {
  _, svc, bot := newChatFixture(t, &stubGenerator{reply: "ok"})

  chat, err := svc.CreateChat(authedCtx("user-1"), bot.ID)
  if err != nil {
    t.Fatalf("CreateChat: %v", err)
  }
  if _, err := svc.GetChat(authedCtx("user-1"), chat.ID); err != nil {
    t.Fatalf("GetChat as owner: %v", err)
  }
  _, err = svc.GetChat(authedCtx("user-2"), chat.ID)
  if kind := apperr.KindOf(err); kind != apperr.KindForbidden {
    t.Errorf("kind = %v, want KindForbidden", kind)
  }
  _, err = svc.GetChat(authedCtx("user-1"), uuid.New())
  if kind := apperr.KindOf(err); kind != apperr.KindNotFound {
    t.Errorf("kind = %v, want KindNotFound", kind)
  }
}
