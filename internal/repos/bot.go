package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

type BotRepo interface {
  Create(ctx context.Context, tx *gorm.DB, bot *types.Bot) (*types.Bot, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Bot, error)
  GetByIDWithSources(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Bot, error)
  GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]types.Bot, error)
}

type botRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBotRepo(db *gorm.DB, baseLog *logger.Logger) BotRepo {
  return &botRepo{
    db:  db,
    log: baseLog.With("repo", "BotRepo"),
  }
}

func (br *botRepo) Create(ctx context.Context, tx *gorm.DB, bot *types.Bot) (*types.Bot, error) {
  if tx == nil {
    tx = br.db
  }
  if bot.ID == uuid.Nil {
    bot.ID = uuid.New()
  }
  if err := tx.WithContext(ctx).Create(bot).Error; err != nil {
    br.log.Error("failed to create bot", "error", err)
    return nil, err
  }
  return bot, nil
}

func (br *botRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Bot, error) {
  if tx == nil {
    tx = br.db
  }
  var b types.Bot
  if err := tx.WithContext(ctx).
    Where("id = ?", id).
    First(&b).Error; err != nil {
    return nil, err
  }
  return &b, nil
}

func (br *botRepo) GetByIDWithSources(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Bot, error) {
  if tx == nil {
    tx = br.db
  }
  var b types.Bot
  if err := tx.WithContext(ctx).
    Preload("Sources", func(db *gorm.DB) *gorm.DB {
      return db.Order("created_at ASC")
    }).
    Where("id = ?", id).
    First(&b).Error; err != nil {
    return nil, err
  }
  return &b, nil
}

func (br *botRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]types.Bot, error) {
  if tx == nil {
    tx = br.db
  }
  var bots []types.Bot
  if err := tx.WithContext(ctx).
    Where("owner_id = ?", ownerID).
    Order("created_at DESC").
    Find(&bots).Error; err != nil {
    br.log.Error("failed to get bots by owner", "error", err)
    return nil, err
  }
  return bots, nil
}
