package extract

import (
  "bytes"
  "os"

  "github.com/ledongthuc/pdf"
)

// extractPDF returns the concatenated text layer of every page in the
// PDF at path.
func extractPDF(path string) (string, error) {
  content, err := os.ReadFile(path)
  if err != nil {
    if os.IsNotExist(err) {
      return "", newError(KindNotFound, err, "pdf file %q not found", path)
    }
    return "", newError(KindNotFound, err, "read pdf %q", path)
  }
  r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
  if err != nil {
    return "", newError(KindUnsupportedFormat, err, "open pdf %q", path)
  }
  var buf bytes.Buffer
  numPages := r.NumPage()
  for i := 1; i <= numPages; i++ {
    page := r.Page(i)
    if page.V.IsNull() {
      continue
    }
    text, err := page.GetPlainText(nil)
    if err != nil {
      return "", newError(KindUnsupportedFormat, err, "extract pdf page %d", i)
    }
    buf.WriteString(text)
    if i < numPages {
      buf.WriteByte('\n')
    }
  }
  return buf.String(), nil
}
