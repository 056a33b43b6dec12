package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/0CyberGhost0/BotIo/internal/services"
)

type BotHandler struct {
  botService services.BotService
}

func NewBotHandler(botService services.BotService) *BotHandler {
  return &BotHandler{botService: botService}
}

func (bh *BotHandler) GetBots(c *gin.Context) {
  bots, err := bh.botService.GetUserBots(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, bots)
}

func (bh *BotHandler) CreateBot(c *gin.Context) {
  var body struct {
    Name        string `json:"name"`
    Description string `json:"description"`
    Model       string `json:"model"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  bot, err := bh.botService.CreateBot(c.Request.Context(), body.Name, body.Description, body.Model)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, bot)
}

func (bh *BotHandler) GetUsage(c *gin.Context) {
  usage, err := bh.botService.GetUsage(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, usage)
}

func (bh *BotHandler) GetBot(c *gin.Context) {
  botID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
    return
  }
  bot, err := bh.botService.GetBot(c.Request.Context(), botID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, bot)
}

func (bh *BotHandler) GetBotSources(c *gin.Context) {
  botID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
    return
  }
  sources, err := bh.botService.GetBotSources(c.Request.Context(), botID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, sources)
}
