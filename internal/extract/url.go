package extract

import (
  "context"
  "fmt"
  "net/http"
  "net/url"
  "strings"

  "github.com/PuerkitoBio/goquery"
)

// textInputSelector matches the form fields whose labels stand in for
// page content on form-centric pages.
const textInputSelector = `input[type="text"], input[type="email"], input[type="search"], input[type="tel"], input[type="url"], input:not([type]), textarea`

// extractURL fetches the page at rawURL and returns its visible text
// with script and style content stripped. When the page carries
// text-like form inputs, their value/placeholder/name labels are
// returned instead, joined with " | ".
func (s *Service) extractURL(ctx context.Context, rawURL string) (string, error) {
  parsed, err := url.Parse(rawURL)
  if err != nil || parsed.Scheme == "" || parsed.Host == "" {
    return "", newError(KindInvalidLocator, err, "invalid url %q", rawURL)
  }
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
  if err != nil {
    return "", newError(KindInvalidLocator, err, "build request for %q", rawURL)
  }
  req.Header.Set("User-Agent", s.userAgent)
  resp, err := s.client.Do(req)
  if err != nil {
    return "", newError(KindUpstreamUnavailable, err, "fetch %q", rawURL)
  }
  defer resp.Body.Close()
  if resp.StatusCode == http.StatusNotFound {
    return "", newError(KindNotFound, nil, "url %q responded with 404", rawURL)
  }
  if resp.StatusCode < 200 || resp.StatusCode > 299 {
    return "", newError(KindUpstreamUnavailable, nil, "url %q responded with HTTP %d", rawURL, resp.StatusCode)
  }

  doc, err := goquery.NewDocumentFromReader(resp.Body)
  if err != nil {
    return "", newError(KindUnsupportedFormat, err, "parse html from %q", rawURL)
  }

  if labels := formFieldLabels(doc); labels != "" {
    return labels, nil
  }

  doc.Find("script, style, noscript").Remove()
  return strings.Join(strings.Fields(doc.Find("body").Text()), " "), nil
}

func formFieldLabels(doc *goquery.Document) string {
  var labels []string
  doc.Find(textInputSelector).Each(func(_ int, sel *goquery.Selection) {
    val, _ := sel.Attr("value")
    placeholder, _ := sel.Attr("placeholder")
    name, _ := sel.Attr("name")
    label := strings.Join(strings.Fields(fmt.Sprintf("%s %s %s", val, placeholder, name)), " ")
    if label != "" {
      labels = append(labels, label)
    }
  })
  return strings.Join(labels, " | ")
}
