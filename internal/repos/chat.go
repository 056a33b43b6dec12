package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

type ChatRepo interface {
  Create(ctx context.Context, tx *gorm.DB, chat *types.Chat) (*types.Chat, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Chat, error)
  GetByIDWithMessages(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Chat, error)
  GetUserChats(ctx context.Context, tx *gorm.DB, userID string) ([]types.Chat, error)
  TouchUpdatedAt(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type chatRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChatRepo(db *gorm.DB, baseLog *logger.Logger) ChatRepo {
  return &chatRepo{
    db:  db,
    log: baseLog.With("repo", "ChatRepo"),
  }
}

func (cr *chatRepo) Create(ctx context.Context, tx *gorm.DB, chat *types.Chat) (*types.Chat, error) {
  if tx == nil {
    tx = cr.db
  }
  if chat.ID == uuid.Nil {
    chat.ID = uuid.New()
  }
  if err := tx.WithContext(ctx).Create(chat).Error; err != nil {
    cr.log.Error("failed to create chat", "error", err)
    return nil, err
  }
  return chat, nil
}

func (cr *chatRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Chat, error) {
  if tx == nil {
    tx = cr.db
  }
  var c types.Chat
  if err := tx.WithContext(ctx).
    Preload("Bot").
    Where("id = ?", id).
    First(&c).Error; err != nil {
    return nil, err
  }
  return &c, nil
}

func (cr *chatRepo) GetByIDWithMessages(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Chat, error) {
  if tx == nil {
    tx = cr.db
  }
  var c types.Chat
  if err := tx.WithContext(ctx).
    Preload("Bot").
    Preload("Messages", func(db *gorm.DB) *gorm.DB {
      return db.Order("created_at ASC")
    }).
    Where("id = ?", id).
    First(&c).Error; err != nil {
    return nil, err
  }
  return &c, nil
}

func (cr *chatRepo) GetUserChats(ctx context.Context, tx *gorm.DB, userID string) ([]types.Chat, error) {
  if tx == nil {
    tx = cr.db
  }
  var chats []types.Chat
  if err := tx.WithContext(ctx).
    Preload("Bot").
    Preload("Messages", func(db *gorm.DB) *gorm.DB {
      return db.Order("created_at ASC")
    }).
    Where("user_id = ?", userID).
    Order("updated_at DESC").
    Find(&chats).Error; err != nil {
    cr.log.Error("failed to get chats by userID", "error", err)
    return nil, err
  }
  return chats, nil
}

func (cr *chatRepo) TouchUpdatedAt(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  if tx == nil {
    tx = cr.db
  }
  if err := tx.WithContext(ctx).
    Model(&types.Chat{}).
    Where("id = ?", id).
    Update("updated_at", time.Now()).Error; err != nil {
    cr.log.Error("failed to touch chat updated_at", "error", err)
    return err
  }
  return nil
}
