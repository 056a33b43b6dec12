package services

import (
  "context"
  "path/filepath"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/repos"
  "github.com/0CyberGhost0/BotIo/internal/requestdata"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

// testStore wires real repos over a throwaway sqlite database so the
// services exercise the same gorm paths they do in production.
type testStore struct {
  db         *gorm.DB
  log        *logger.Logger
  botRepo    repos.BotRepo
  sourceRepo repos.SourceRepo
  chatRepo   repos.ChatRepo
  msgRepo    repos.ChatMessageRepo
  usageRepo  repos.UserUsageRepo
}

func newTestStore(t *testing.T) *testStore {
  t.Helper()
  path := filepath.Join(t.TempDir(), "test.db")
  db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Discard})
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := db.AutoMigrate(
    &types.Bot{},
    &types.Source{},
    &types.Chat{},
    &types.ChatMessage{},
    &types.UserUsage{},
  ); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  log := logger.NewNop()
  return &testStore{
    db:         db,
    log:        log,
    botRepo:    repos.NewBotRepo(db, log),
    sourceRepo: repos.NewSourceRepo(db, log),
    chatRepo:   repos.NewChatRepo(db, log),
    msgRepo:    repos.NewChatMessageRepo(db, log),
    usageRepo:  repos.NewUserUsageRepo(db, log),
  }
}

func (ts *testStore) createBot(t *testing.T, owner string) *types.Bot {
  t.Helper()
  bot, err := ts.botRepo.Create(context.Background(), nil, &types.Bot{
    Name:    "Test Bot",
    Model:   "gemini-2.0-flash",
    OwnerID: owner,
  })
  if err != nil {
    t.Fatalf("create bot: %v", err)
  }
  return bot
}

func authedCtx(userID string) context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
    TokenString: "test-token",
    UserID:      userID,
  })
}

type stubExtractor struct {
  content     string
  err         error
  lastType    types.SourceType
  lastLocator string
}

func (se *stubExtractor) Extract(_ context.Context, sourceType types.SourceType, locator string) (string, error) {
  se.lastType = sourceType
  se.lastLocator = locator
  if se.err != nil {
    return "", se.err
  }
  return se.content, nil
}

type generatorCall struct {
  systemPrompt string
  userMessage  string
}

type stubGenerator struct {
  reply string
  err   error
  calls []generatorCall
}

func (sg *stubGenerator) Generate(_ context.Context, systemPrompt, userMessage string) (string, error) {
  sg.calls = append(sg.calls, generatorCall{systemPrompt: systemPrompt, userMessage: userMessage})
  if sg.err != nil {
    return "", sg.err
  }
  return sg.reply, nil
}

type recordingCache struct {
  store       map[uuid.UUID]string
  invalidated []uuid.UUID
}

func newRecordingCache() *recordingCache {
  return &recordingCache{store: make(map[uuid.UUID]string)}
}

func (rc *recordingCache) Get(_ context.Context, botID uuid.UUID) (string, bool) {
  prompt, ok := rc.store[botID]
  return prompt, ok
}

func (rc *recordingCache) Set(_ context.Context, botID uuid.UUID, prompt string) {
  rc.store[botID] = prompt
}

func (rc *recordingCache) Invalidate(_ context.Context, botID uuid.UUID) {
  rc.invalidated = append(rc.invalidated, botID)
  delete(rc.store, botID)
}
