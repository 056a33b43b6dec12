package handlers

import (
  "fmt"
  "net/http"
  "path/filepath"
  "strings"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/requestdata"
  "github.com/0CyberGhost0/BotIo/internal/services"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

// maxUploadBytes caps source file uploads at 10MB.
const maxUploadBytes = 10 << 20

var allowedUploadExts = map[string]bool{
  ".pdf":  true,
  ".txt":  true,
  ".docx": true,
}

type TrainHandler struct {
  log          *logger.Logger
  trainService services.TrainService
  uploadDir    string
}

func NewTrainHandler(baseLog *logger.Logger, trainService services.TrainService, uploadDir string) *TrainHandler {
  return &TrainHandler{
    log:          baseLog.With("handler", "TrainHandler"),
    trainService: trainService,
    uploadDir:    uploadDir,
  }
}

// Train ingests one knowledge source for the bot in the path. The
// request is multipart: type/content/title fields plus an optional
// file. The stored temp file is owned by the train service, which
// deletes it after processing.
func (th *TrainHandler) Train(c *gin.Context) {
  botID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
    return
  }
  req := services.TrainRequest{
    BotID:   botID,
    Type:    types.SourceType(c.PostForm("type")),
    Content: c.PostForm("content"),
    Title:   c.PostForm("title"),
  }
  if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
    req.UserID = rd.UserID
  }

  file, err := c.FormFile("file")
  if err == nil && file != nil {
    ext := strings.ToLower(filepath.Ext(file.Filename))
    if !allowedUploadExts[ext] {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, only PDF, TXT, and DOCX are allowed"})
      return
    }
    if file.Size > maxUploadBytes {
      c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
      return
    }
    dst := filepath.Join(th.uploadDir, fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename)))
    if err := c.SaveUploadedFile(file, dst); err != nil {
      th.log.Error("failed to store uploaded file", "error", err)
      c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
      return
    }
    req.FilePath = dst
    req.OriginalName = file.Filename
  }

  source, err := th.trainService.Train(c.Request.Context(), req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, source)
}
