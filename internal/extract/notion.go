package extract

import (
  "context"
  "encoding/json"
  "net/http"
  "strings"
)

type notionRichText struct {
  PlainText string `json:"plain_text"`
}

type notionBlockBody struct {
  RichText []notionRichText `json:"rich_text"`
  Text     []notionRichText `json:"text"`
}

type notionChildrenResponse struct {
  Results []map[string]json.RawMessage `json:"results"`
}

// extractNotionPage fetches the page's top-level content blocks and
// joins each block's primary text run with spaces. pageID is the bare
// page identifier; the caller strips the URL prefix.
func (s *Service) extractNotionPage(ctx context.Context, pageID string) (string, error) {
  if pageID == "" {
    return "", newError(KindInvalidLocator, nil, "empty notion page id")
  }
  reqURL := s.notionBaseURL + "/blocks/" + pageID + "/children?page_size=100"
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
  if err != nil {
    return "", newError(KindInvalidLocator, err, "build notion request for page %q", pageID)
  }
  req.Header.Set("Authorization", "Bearer "+s.notionToken)
  req.Header.Set("Notion-Version", notionVersion)
  resp, err := s.client.Do(req)
  if err != nil {
    return "", newError(KindUpstreamUnavailable, err, "fetch notion page %q", pageID)
  }
  defer resp.Body.Close()
  switch {
  case resp.StatusCode == http.StatusNotFound:
    return "", newError(KindNotFound, nil, "notion page %q not found", pageID)
  case resp.StatusCode == http.StatusBadRequest:
    return "", newError(KindInvalidLocator, nil, "notion rejected page id %q", pageID)
  case resp.StatusCode < 200 || resp.StatusCode > 299:
    return "", newError(KindUpstreamUnavailable, nil, "notion responded with HTTP %d for page %q", resp.StatusCode, pageID)
  }
  var children notionChildrenResponse
  if err := json.NewDecoder(resp.Body).Decode(&children); err != nil {
    return "", newError(KindUpstreamUnavailable, err, "decode notion page %q", pageID)
  }
  parts := make([]string, 0, len(children.Results))
  for _, block := range children.Results {
    parts = append(parts, notionBlockText(block))
  }
  return strings.TrimSpace(strings.Join(parts, " ")), nil
}

// notionBlockText returns the first text run of the block's typed
// body. The body lives under a key named after the block type
// ("paragraph", "heading_1", ...); newer API versions call the runs
// rich_text, older ones text.
func notionBlockText(block map[string]json.RawMessage) string {
  var blockType string
  if raw, ok := block["type"]; ok {
    if err := json.Unmarshal(raw, &blockType); err != nil {
      return ""
    }
  }
  raw, ok := block[blockType]
  if !ok {
    return ""
  }
  var body notionBlockBody
  if err := json.Unmarshal(raw, &body); err != nil {
    return ""
  }
  runs := body.RichText
  if len(runs) == 0 {
    runs = body.Text
  }
  if len(runs) == 0 {
    return ""
  }
  return runs[0].PlainText
}
