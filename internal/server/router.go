package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/0CyberGhost0/BotIo/internal/handlers"
  "github.com/0CyberGhost0/BotIo/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware *middleware.AuthMiddleware
  BotHandler     *handlers.BotHandler
  TrainHandler   *handlers.TrainHandler
  ChatHandler    *handlers.ChatHandler
  EmbedHandler   *handlers.EmbedHandler
  AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  if len(cfg.AllowOrigins) == 0 {
    cfg.AllowOrigins = []string{"http://localhost:3000"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     cfg.AllowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/healthz", handlers.Healthz)

  bots := router.Group("/api/bots")

  //-----------------------------------------
  // Public Embed Routes
  //-----------------------------------------
  bots.GET("/embed/:id", cfg.EmbedHandler.GetBot)
  bots.POST("/embed/chat", cfg.EmbedHandler.CreateChat)
  bots.POST("/embed/chat/:id/message", cfg.EmbedHandler.PostMessage)

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  protected := bots.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())

  //Bots
  protected.GET("", cfg.BotHandler.GetBots)
  protected.POST("/create", cfg.BotHandler.CreateBot)
  protected.GET("/usage", cfg.BotHandler.GetUsage)
  protected.GET("/:id", cfg.BotHandler.GetBot)
  protected.GET("/:id/sources", cfg.BotHandler.GetBotSources)

  //Training
  protected.POST("/train/:id", cfg.TrainHandler.Train)

  //Chats
  protected.GET("/chat", cfg.ChatHandler.GetChats)
  protected.GET("/chat/:id", cfg.ChatHandler.GetChat)
  protected.POST("/chat/create", cfg.ChatHandler.CreateChat)
  protected.POST("/chat/:id/message", cfg.ChatHandler.PostMessage)

  return router
}
