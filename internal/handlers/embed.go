package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/0CyberGhost0/BotIo/internal/services"
)

// EmbedHandler serves the unauthenticated surface used by the embed
// widget and iframe.
type EmbedHandler struct {
  botService  services.BotService
  chatService services.ChatService
}

func NewEmbedHandler(botService services.BotService, chatService services.ChatService) *EmbedHandler {
  return &EmbedHandler{botService: botService, chatService: chatService}
}

func (eh *EmbedHandler) GetBot(c *gin.Context) {
  botID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
    return
  }
  bot, err := eh.botService.GetEmbedBot(c.Request.Context(), botID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, bot)
}

func (eh *EmbedHandler) CreateChat(c *gin.Context) {
  var body struct {
    BotID string `json:"botId"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  botID, err := uuid.Parse(body.BotID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "bot id is required"})
    return
  }
  chat, err := eh.chatService.CreateEmbeddedChat(c.Request.Context(), botID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, chat)
}

func (eh *EmbedHandler) PostMessage(c *gin.Context) {
  chatID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
    return
  }
  var body struct {
    Content string `json:"content"`
    BotID   string `json:"botId"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  botID, err := uuid.Parse(body.BotID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "bot id is required"})
    return
  }
  userMsg, assistantMsg, err := eh.chatService.PostEmbeddedMessage(c.Request.Context(), chatID, botID, body.Content)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{
    "userMessage": userMsg,
    "botResponse": assistantMsg,
  })
}
