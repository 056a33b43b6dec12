package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

type SourceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, source *types.Source) (*types.Source, error)
  GetByBotID(ctx context.Context, tx *gorm.DB, botID uuid.UUID) ([]types.Source, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]types.Source, error)
}

type sourceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSourceRepo(db *gorm.DB, baseLog *logger.Logger) SourceRepo {
  return &sourceRepo{
    db:  db,
    log: baseLog.With("repo", "SourceRepo"),
  }
}

func (sr *sourceRepo) Create(ctx context.Context, tx *gorm.DB, source *types.Source) (*types.Source, error) {
  if tx == nil {
    tx = sr.db
  }
  if source.ID == uuid.Nil {
    source.ID = uuid.New()
  }
  if err := tx.WithContext(ctx).Create(source).Error; err != nil {
    sr.log.Error("failed to create source", "error", err)
    return nil, err
  }
  return source, nil
}

// GetByBotID returns a bot's sources in insertion order. The prompt
// assembler depends on this order being stable.
func (sr *sourceRepo) GetByBotID(ctx context.Context, tx *gorm.DB, botID uuid.UUID) ([]types.Source, error) {
  if tx == nil {
    tx = sr.db
  }
  var sources []types.Source
  if err := tx.WithContext(ctx).
    Where("bot_id = ?", botID).
    Order("created_at ASC").
    Find(&sources).Error; err != nil {
    sr.log.Error("failed to get sources by botID", "error", err)
    return nil, err
  }
  return sources, nil
}

func (sr *sourceRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Source, error) {
  if tx == nil {
    tx = sr.db
  }
  var sources []types.Source
  if err := tx.WithContext(ctx).
    Order("created_at ASC").
    Find(&sources).Error; err != nil {
    sr.log.Error("failed to get all sources", "error", err)
    return nil, err
  }
  return sources, nil
}
