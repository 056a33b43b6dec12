package services

import (
  "context"
  "errors"
  "net/url"
  "os"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/apperr"
  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/repos"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

// Extractor is the capability the coordinator needs from the
// extractor set.
type Extractor interface {
  Extract(ctx context.Context, sourceType types.SourceType, locator string) (string, error)
}

// TrainRequest is one source-ingestion request. FilePath points at a
// temporary uploaded file for file-backed types; Content carries the
// inline locator or raw text otherwise.
type TrainRequest struct {
  BotID        uuid.UUID
  UserID       string
  Type         types.SourceType
  Content      string
  Title        string
  FilePath     string
  OriginalName string
}

type TrainService interface {
  Train(ctx context.Context, req TrainRequest) (*types.Source, error)
}

type trainService struct {
  db         *gorm.DB
  log        *logger.Logger
  botRepo    repos.BotRepo
  sourceRepo repos.SourceRepo
  usageRepo  repos.UserUsageRepo
  extractor  Extractor
  cache      PromptCache
}

func NewTrainService(db *gorm.DB, baseLog *logger.Logger, botRepo repos.BotRepo, sourceRepo repos.SourceRepo, usageRepo repos.UserUsageRepo, extractor Extractor, cache PromptCache) TrainService {
  return &trainService{
    db:         db,
    log:        baseLog.With("service", "TrainService"),
    botRepo:    botRepo,
    sourceRepo: sourceRepo,
    usageRepo:  usageRepo,
    extractor:  extractor,
    cache:      cache,
  }
}

// Train validates the request, extracts the source text, and persists
// exactly one Source on success. The temporary uploaded file, if any,
// is deleted whether extraction succeeds or fails.
func (ts *trainService) Train(ctx context.Context, req TrainRequest) (*types.Source, error) {
  defer func() {
    if req.FilePath == "" {
      return
    }
    if err := os.Remove(req.FilePath); err != nil && !os.IsNotExist(err) {
      ts.log.Warn("failed to remove uploaded file", "path", req.FilePath, "error", err)
    }
  }()

  //1) Validate the request shape before touching anything.
  if !req.Type.Valid() {
    return nil, apperr.Newf(apperr.KindValidation, "invalid source type %q", string(req.Type))
  }
  if req.Type.RequiresFile() {
    if req.FilePath == "" {
      return nil, apperr.Newf(apperr.KindValidation, "a file is required for type %q", string(req.Type))
    }
    if req.Content != "" {
      return nil, apperr.Newf(apperr.KindValidation, "type %q takes a file, not inline content", string(req.Type))
    }
  } else {
    if req.Content == "" {
      return nil, apperr.Newf(apperr.KindValidation, "content is required for type %q", string(req.Type))
    }
    if req.FilePath != "" {
      return nil, apperr.Newf(apperr.KindValidation, "type %q takes inline content, not a file", string(req.Type))
    }
  }

  //2) The bot must exist before any extraction work happens.
  if _, err := ts.botRepo.GetByID(ctx, nil, req.BotID); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperr.Newf(apperr.KindNotFound, "bot %s not found", req.BotID)
    }
    return nil, err
  }

  title := req.Title
  if title == "" {
    title = deriveTitle(req)
  }

  //3) Resolve the locator and run the matching extractor.
  locator := req.Content
  if req.Type.RequiresFile() {
    locator = req.FilePath
  }
  if req.Type == types.SourceTypeNotion {
    // Notion locators arrive as page URLs; the page id is the last
    // hyphen-separated segment.
    parts := strings.Split(req.Content, "-")
    locator = parts[len(parts)-1]
  }
  content, err := ts.extractor.Extract(ctx, req.Type, locator)
  if err != nil {
    ts.log.Warn("extraction failed", "type", string(req.Type), "error", err)
    return nil, apperr.Wrap(apperr.KindExtraction, err, "failed to extract source content")
  }

  //4) Persist the source and account for it.
  source := &types.Source{
    BotID:   req.BotID,
    Type:    req.Type,
    Title:   title,
    Content: content,
  }
  if source, err = ts.sourceRepo.Create(ctx, nil, source); err != nil {
    return nil, err
  }
  if err := ts.usageRepo.Increment(ctx, nil, req.UserID, repos.UsageSourcesCount, 1); err != nil {
    ts.log.Warn("failed to increment sourcesCount", "userID", req.UserID, "error", err)
  }
  if ts.cache != nil {
    ts.cache.Invalidate(ctx, req.BotID)
  }
  return source, nil
}

// deriveTitle applies the title policy for requests that carry none:
// file types use the original filename without its extension,
// locator types use hostname plus the last path segment, and raw text
// uses its first 30 characters.
func deriveTitle(req TrainRequest) string {
  switch {
  case req.Type.RequiresFile():
    name := req.OriginalName
    if idx := strings.LastIndex(name, "."); idx > 0 {
      name = name[:idx]
    }
    if name == "" {
      return "Untitled"
    }
    return name
  case req.Type == types.SourceTypeText:
    runes := []rune(req.Content)
    if len(runes) > 30 {
      return string(runes[:30]) + "..."
    }
    return req.Content
  default:
    return deriveLocatorTitle(req.Content)
  }
}

func deriveLocatorTitle(rawURL string) string {
  parsed, err := url.Parse(rawURL)
  if err != nil || parsed.Hostname() == "" {
    return "Untitled"
  }
  segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
  last := segments[len(segments)-1]
  last = strings.NewReplacer("-", " ", "_", " ").Replace(last)
  if last == "" {
    return parsed.Hostname()
  }
  return parsed.Hostname() + " " + last
}
