package services

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/apperr"
  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/repos"
  "github.com/0CyberGhost0/BotIo/internal/requestdata"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

type BotService interface {
  CreateBot(ctx context.Context, name, description, model string) (*types.Bot, error)
  GetUserBots(ctx context.Context) ([]types.Bot, error)
  GetBot(ctx context.Context, botID uuid.UUID) (*types.Bot, error)
  GetBotSources(ctx context.Context, botID uuid.UUID) ([]types.Source, error)
  GetUsage(ctx context.Context) (*types.UserUsage, error)

  // GetEmbedBot serves the public embed surface: no identity required,
  // sources are not included.
  GetEmbedBot(ctx context.Context, botID uuid.UUID) (*types.Bot, error)
}

type botService struct {
  db         *gorm.DB
  log        *logger.Logger
  botRepo    repos.BotRepo
  sourceRepo repos.SourceRepo
  usageRepo  repos.UserUsageRepo
}

func NewBotService(db *gorm.DB, baseLog *logger.Logger, botRepo repos.BotRepo, sourceRepo repos.SourceRepo, usageRepo repos.UserUsageRepo) BotService {
  return &botService{
    db:         db,
    log:        baseLog.With("service", "BotService"),
    botRepo:    botRepo,
    sourceRepo: sourceRepo,
    usageRepo:  usageRepo,
  }
}

func (bs *botService) CreateBot(ctx context.Context, name, description, model string) (*types.Bot, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, apperr.New(apperr.KindForbidden, "no authenticated user")
  }
  if name == "" {
    return nil, apperr.New(apperr.KindValidation, "bot name is required")
  }
  bot := &types.Bot{
    Name:        name,
    Description: description,
    Model:       model,
    OwnerID:     rd.UserID,
  }
  bot, err := bs.botRepo.Create(ctx, nil, bot)
  if err != nil {
    return nil, err
  }
  if err := bs.usageRepo.Increment(ctx, nil, rd.UserID, repos.UsageBotCount, 1); err != nil {
    bs.log.Warn("failed to increment botCount", "userID", rd.UserID, "error", err)
  }
  return bot, nil
}

func (bs *botService) GetUserBots(ctx context.Context) ([]types.Bot, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, apperr.New(apperr.KindForbidden, "no authenticated user")
  }
  return bs.botRepo.GetByOwner(ctx, nil, rd.UserID)
}

func (bs *botService) GetBot(ctx context.Context, botID uuid.UUID) (*types.Bot, error) {
  bot, err := bs.botRepo.GetByIDWithSources(ctx, nil, botID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.Newf(apperr.KindNotFound, "bot %s not found", botID)
    }
    return nil, err
  }
  return bot, nil
}

func (bs *botService) GetBotSources(ctx context.Context, botID uuid.UUID) ([]types.Source, error) {
  return bs.sourceRepo.GetByBotID(ctx, nil, botID)
}

func (bs *botService) GetUsage(ctx context.Context) (*types.UserUsage, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    return nil, apperr.New(apperr.KindForbidden, "no authenticated user")
  }
  usage, err := bs.usageRepo.GetByUserID(ctx, nil, rd.UserID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      // No events yet: all counters at zero.
      return &types.UserUsage{UserID: rd.UserID}, nil
    }
    return nil, err
  }
  return usage, nil
}

func (bs *botService) GetEmbedBot(ctx context.Context, botID uuid.UUID) (*types.Bot, error) {
  bot, err := bs.botRepo.GetByID(ctx, nil, botID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.Newf(apperr.KindNotFound, "bot %s not found", botID)
    }
    return nil, err
  }
  return bot, nil
}
