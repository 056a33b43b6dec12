package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

type ChatMessageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, msg *types.ChatMessage) (*types.ChatMessage, error)
  GetByChatID(ctx context.Context, tx *gorm.DB, chatID uuid.UUID) ([]types.ChatMessage, error)
}

type chatMessageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
  return &chatMessageRepo{
    db:  db,
    log: baseLog.With("repo", "ChatMessageRepo"),
  }
}

func (cmr *chatMessageRepo) Create(ctx context.Context, tx *gorm.DB, msg *types.ChatMessage) (*types.ChatMessage, error) {
  if tx == nil {
    tx = cmr.db
  }
  if msg.ID == uuid.Nil {
    msg.ID = uuid.New()
  }
  if err := tx.WithContext(ctx).Create(msg).Error; err != nil {
    cmr.log.Error("failed to create chat message", "error", err)
    return nil, err
  }
  return msg, nil
}

func (cmr *chatMessageRepo) GetByChatID(ctx context.Context, tx *gorm.DB, chatID uuid.UUID) ([]types.ChatMessage, error) {
  if tx == nil {
    tx = cmr.db
  }
  var msgs []types.ChatMessage
  if err := tx.WithContext(ctx).
    Where("chat_id = ?", chatID).
    Order("created_at ASC").
    Find(&msgs).Error; err != nil {
    cmr.log.Error("failed to get chat messages by chatID", "error", err)
    return nil, err
  }
  return msgs, nil
}
