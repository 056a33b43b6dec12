// Package extract converts heterogeneous knowledge source locators
// (file paths, URLs, video links, Notion page ids, raw strings) into
// plain text.
package extract

import (
  "context"
  "net/http"
  "strings"
  "time"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

const (
  defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
  defaultYouTubeBaseURL = "https://www.youtube.com/api/timedtext"
  defaultNotionBaseURL  = "https://api.notion.com/v1"
  notionVersion         = "2022-06-28"
)

// Config carries the injected external-service handles so tests can
// point the fetching extractors at local doubles.
type Config struct {
  HTTPClient     *http.Client
  NotionToken    string
  NotionBaseURL  string
  YouTubeBaseURL string
  UserAgent      string
}

// Service is the extractor set. One method per source type plus a
// closed dispatch switch; adding a source type means adding a case
// here and a constant in types.
type Service struct {
  log            *logger.Logger
  client         *http.Client
  notionToken    string
  notionBaseURL  string
  youtubeBaseURL string
  userAgent      string
}

func NewService(baseLog *logger.Logger, cfg Config) *Service {
  if cfg.HTTPClient == nil {
    cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
  }
  if cfg.NotionBaseURL == "" {
    cfg.NotionBaseURL = defaultNotionBaseURL
  }
  if cfg.YouTubeBaseURL == "" {
    cfg.YouTubeBaseURL = defaultYouTubeBaseURL
  }
  if cfg.UserAgent == "" {
    cfg.UserAgent = defaultUserAgent
  }
  return &Service{
    log:            baseLog.With("service", "ExtractService"),
    client:         cfg.HTTPClient,
    notionToken:    cfg.NotionToken,
    notionBaseURL:  cfg.NotionBaseURL,
    youtubeBaseURL: cfg.YouTubeBaseURL,
    userAgent:      cfg.UserAgent,
  }
}

// Extract resolves locator according to sourceType and returns the
// extracted plain text. For file-backed types locator is a path; for
// url/youtube it is a URL; for notion a page id; for text the raw
// content itself.
func (s *Service) Extract(ctx context.Context, sourceType types.SourceType, locator string) (string, error) {
  switch sourceType {
  case types.SourceTypePDF:
    return extractPDF(locator)
  case types.SourceTypeTXT:
    return extractTxt(locator)
  case types.SourceTypeDocs:
    return extractDocx(locator)
  case types.SourceTypeText:
    return strings.TrimSpace(locator), nil
  case types.SourceTypeURL:
    return s.extractURL(ctx, locator)
  case types.SourceTypeYouTube:
    return s.extractYouTube(ctx, locator)
  case types.SourceTypeNotion:
    return s.extractNotionPage(ctx, locator)
  default:
    return "", newError(KindUnsupportedFormat, nil, "unsupported source type %q", string(sourceType))
  }
}
