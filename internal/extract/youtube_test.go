package extract

import (
  "context"
  "net/http"
  "net/http/httptest"
  "testing"

  "github.com/0CyberGhost0/BotIo/internal/types"
)

func TestParseVideoID(t *testing.T) {
  tests := []struct {
    url     string
    want    string
    wantErr bool
  }{
    {"https://www.youtube.com/watch?v=ABC123", "ABC123", false},
    {"https://youtube.com/watch?v=ABC123&t=30s", "ABC123", false},
    {"https://youtu.be/ABC123", "ABC123", false},
    {"https://youtu.be/FTdMJIxGEWA?si=xyz", "FTdMJIxGEWA", false},
    {"https://www.youtube.com/watch", "", true},
    {"https://vimeo.com/12345", "", true},
    {"not a url at all ://", "", true},
  }
  for _, tt := range tests {
    got, err := ParseVideoID(tt.url)
    if tt.wantErr {
      if err == nil {
        t.Errorf("ParseVideoID(%q): expected error, got %q", tt.url, got)
        continue
      }
      if kind := kindOf(t, err); kind != KindInvalidLocator {
        t.Errorf("ParseVideoID(%q): kind = %v, want KindInvalidLocator", tt.url, kind)
      }
      continue
    }
    if err != nil {
      t.Errorf("ParseVideoID(%q): %v", tt.url, err)
      continue
    }
    if got != tt.want {
      t.Errorf("ParseVideoID(%q) = %q, want %q", tt.url, got, tt.want)
    }
  }
}

func TestExtract_youtubeTranscript(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if got := r.URL.Query().Get("v"); got != "ABC123" {
      t.Errorf("v = %q, want %q", got, "ABC123")
    }
    w.Header().Set("Content-Type", "text/xml")
    w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?><transcript><text start="0" dur="1.2">Hello</text><text start="1.2" dur="2.0">world &amp; friends</text></transcript>`))
  }))
  defer srv.Close()

  s := newTestService(t, Config{HTTPClient: srv.Client(), YouTubeBaseURL: srv.URL})
  got, err := s.Extract(context.Background(), types.SourceTypeYouTube, "https://www.youtube.com/watch?v=ABC123")
  if err != nil {
    t.Fatalf("Extract: %v", err)
  }
  if got != "Hello world & friends" {
    t.Errorf("got %q", got)
  }
}

func TestExtract_youtubeNoTranscript(t *testing.T) {
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    http.NotFound(w, r)
  }))
  defer srv.Close()

  s := newTestService(t, Config{HTTPClient: srv.Client(), YouTubeBaseURL: srv.URL})
  _, err := s.Extract(context.Background(), types.SourceTypeYouTube, "https://youtu.be/ABC123")
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := kindOf(t, err); kind != KindNotFound {
    t.Errorf("kind = %v, want KindNotFound", kind)
  }
}

func TestExtract_youtubeInvalidURL(t *testing.T) {
  s := newTestService(t, Config{})
  _, err := s.Extract(context.Background(), types.SourceTypeYouTube, "https://example.com/watch?v=ABC123")
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := kindOf(t, err); kind != KindInvalidLocator {
    t.Errorf("kind = %v, want KindInvalidLocator", kind)
  }
}
