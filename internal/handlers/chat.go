package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/0CyberGhost0/BotIo/internal/services"
)

type ChatHandler struct {
  chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
  return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) GetChats(c *gin.Context) {
  chats, err := ch.chatService.GetUserChats(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, chats)
}

func (ch *ChatHandler) GetChat(c *gin.Context) {
  chatID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
    return
  }
  chat, err := ch.chatService.GetChat(c.Request.Context(), chatID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, chat)
}

func (ch *ChatHandler) CreateChat(c *gin.Context) {
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
  chat, err := ch.chatService.CreateChat(c.Request.Context(), botID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, chat)
}

func (ch *ChatHandler) PostMessage(c *gin.Context) {
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
  userMsg, assistantMsg, err := ch.chatService.PostMessage(c.Request.Context(), chatID, botID, body.Content)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{
    "userMessage": userMsg,
    "botResponse": assistantMsg,
  })
}
