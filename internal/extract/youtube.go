package extract

import (
  "context"
  "encoding/xml"
  "io"
  "net/http"
  "net/url"
  "strings"
)

// ParseVideoID pulls the video identifier out of a YouTube URL in
// either the long watch form (youtube.com/watch?v=ID) or the short
// link form (youtu.be/ID).
func ParseVideoID(rawURL string) (string, error) {
  parsed, err := url.Parse(rawURL)
  if err != nil {
    return "", newError(KindInvalidLocator, err, "invalid youtube url %q", rawURL)
  }
  host := strings.TrimPrefix(parsed.Hostname(), "www.")
  switch {
  case strings.HasSuffix(host, "youtube.com"):
    if id := parsed.Query().Get("v"); id != "" {
      return id, nil
    }
  case host == "youtu.be":
    if id := strings.TrimPrefix(parsed.Path, "/"); id != "" {
      return strings.SplitN(id, "/", 2)[0], nil
    }
  }
  return "", newError(KindInvalidLocator, nil, "invalid youtube url %q: no video id found", rawURL)
}

// timedtext is the caption cue document served by the transcript
// endpoint.
type timedtext struct {
  XMLName xml.Name `xml:"transcript"`
  Texts   []string `xml:"text"`
}

// extractYouTube fetches the caption cues for the video in videoURL
// and joins their text with single spaces.
func (s *Service) extractYouTube(ctx context.Context, videoURL string) (string, error) {
  videoID, err := ParseVideoID(videoURL)
  if err != nil {
    return "", err
  }
  reqURL := s.youtubeBaseURL + "?lang=en&v=" + url.QueryEscape(videoID)
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
  if err != nil {
    return "", newError(KindUpstreamUnavailable, err, "build transcript request for video %q", videoID)
  }
  req.Header.Set("User-Agent", s.userAgent)
  resp, err := s.client.Do(req)
  if err != nil {
    return "", newError(KindUpstreamUnavailable, err, "fetch transcript for video %q", videoID)
  }
  defer resp.Body.Close()
  if resp.StatusCode == http.StatusNotFound {
    return "", newError(KindNotFound, nil, "no transcript for video %q", videoID)
  }
  if resp.StatusCode < 200 || resp.StatusCode > 299 {
    return "", newError(KindUpstreamUnavailable, nil, "transcript endpoint responded with HTTP %d for video %q", resp.StatusCode, videoID)
  }
  body, err := io.ReadAll(resp.Body)
  if err != nil {
    return "", newError(KindUpstreamUnavailable, err, "read transcript for video %q", videoID)
  }
  if len(body) == 0 {
    return "", nil
  }
  var tt timedtext
  if err := xml.Unmarshal(body, &tt); err != nil {
    return "", newError(KindUpstreamUnavailable, err, "decode transcript for video %q", videoID)
  }
  cues := make([]string, 0, len(tt.Texts))
  for _, t := range tt.Texts {
    if t = strings.TrimSpace(t); t != "" {
      cues = append(cues, t)
    }
  }
  return strings.Join(cues, " "), nil
}
