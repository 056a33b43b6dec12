package main

import (
  "context"
  "fmt"
  "net/http"
  "os"
  "strings"
  "time"

  "github.com/joho/godotenv"

  "github.com/0CyberGhost0/BotIo/internal/db"
  "github.com/0CyberGhost0/BotIo/internal/extract"
  "github.com/0CyberGhost0/BotIo/internal/handlers"
  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/middleware"
  "github.com/0CyberGhost0/BotIo/internal/repos"
  "github.com/0CyberGhost0/BotIo/internal/server"
  "github.com/0CyberGhost0/BotIo/internal/services"
  "github.com/0CyberGhost0/BotIo/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  log.Info("Attempting to load environment variables for Main now...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  geminiAPIKey := utils.GetEnv("GEMINI_API_KEY", "", log)
  geminiModel := utils.GetEnv("GEN_MODEL", "", log)
  notionToken := utils.GetEnv("NOTION_TOKEN", "", log)
  redisAddress := utils.GetEnv("REDIS_ADDRESS", "", log)
  redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
  uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads", log)
  promptCacheTTL := utils.GetEnvAsInt("PROMPT_CACHE_TTL", 3600, log)
  allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)

  // Postgres Setup
  log.Info("Setting Up Postgres from Main now...")
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("DB init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()
  log.Info("Postgres Setup From Main Successful :)")

  // Upload Directory Setup
  if err := os.MkdirAll(uploadDir, 0o755); err != nil {
    log.Error("Failed to create upload directory", "dir", uploadDir, "error", err)
    os.Exit(1)
  }

  // Repositories Setup
  log.Info("Setting Up Repositories from Main now...")
  botRepo := repos.NewBotRepo(thePG, log)
  sourceRepo := repos.NewSourceRepo(thePG, log)
  chatRepo := repos.NewChatRepo(thePG, log)
  chatMessageRepo := repos.NewChatMessageRepo(thePG, log)
  userUsageRepo := repos.NewUserUsageRepo(thePG, log)
  log.Info("Repositories Set Up From Main Successful :)")

  // Prompt Cache Setup (optional)
  var promptCache services.PromptCache
  if redisAddress != "" {
    log.Info("Setting Up Redis Prompt Cache From Main Now :)")
    cache, err := services.NewRedisPromptCache(context.Background(), log, redisAddress, redisPassword, time.Duration(promptCacheTTL)*time.Second)
    if err != nil {
      log.Warn("Could not init Redis prompt cache, running without it", "error", err)
    } else {
      promptCache = cache
      log.Info("Redis prompt cache is active!")
    }
  }

  // Services Setup
  log.Info("Setting up Services from Main now...")
  extractService := extract.NewService(log, extract.Config{
    HTTPClient:  &http.Client{Timeout: 15 * time.Second},
    NotionToken: notionToken,
  })
  generator, err := services.NewGeminiService(context.Background(), log, geminiAPIKey, geminiModel)
  if err != nil {
    log.Error("Fatal error: Cannot init GeminiService", "error", err)
    os.Exit(1)
  }
  botService := services.NewBotService(thePG, log, botRepo, sourceRepo, userUsageRepo)
  trainService := services.NewTrainService(thePG, log, botRepo, sourceRepo, userUsageRepo, extractService, promptCache)
  promptService := services.NewPromptService(thePG, log, botRepo, sourceRepo, promptCache)
  chatService := services.NewChatService(thePG, log, botRepo, chatRepo, chatMessageRepo, userUsageRepo, promptService, generator)
  log.Info("Services Set Up From Main Successful :)")

  // Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  botHandler := handlers.NewBotHandler(botService)
  trainHandler := handlers.NewTrainHandler(log, trainService, uploadDir)
  chatHandler := handlers.NewChatHandler(chatService)
  embedHandler := handlers.NewEmbedHandler(botService, chatService)
  log.Info("Handlers Set Up From Main Successful :)")

  // MiddleWare Setup
  authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)

  // Router Setup
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware: authMiddleware,
    BotHandler:     botHandler,
    TrainHandler:   trainHandler,
    ChatHandler:    chatHandler,
    EmbedHandler:   embedHandler,
    AllowOrigins:   strings.Split(allowOrigins, ","),
  })
  log.Info("Router Set Up From Main Successful :)")

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
