package extract

import (
  "archive/zip"
  "bytes"
  "os"
  "regexp"
  "strings"
)

// docxDocumentXMLPath is the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// wtTag matches <w:t>text</w:t> including variants with attributes
// such as <w:t xml:space="preserve">.
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// extractDocx extracts the raw text content of a DOCX file, discarding
// formatting. DOCX is a zip containing word/document.xml (OOXML); all
// <w:t> text nodes are collected and joined with spaces.
func extractDocx(path string) (string, error) {
  content, err := os.ReadFile(path)
  if err != nil {
    if os.IsNotExist(err) {
      return "", newError(KindNotFound, err, "docx file %q not found", path)
    }
    return "", newError(KindNotFound, err, "read docx %q", path)
  }
  zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
  if err != nil {
    return "", newError(KindUnsupportedFormat, err, "docx %q is not a zip archive", path)
  }
  var docXML []byte
  for _, f := range zr.File {
    if f.Name != docxDocumentXMLPath {
      continue
    }
    rc, err := f.Open()
    if err != nil {
      return "", newError(KindUnsupportedFormat, err, "open %s in %q", f.Name, path)
    }
    var buf bytes.Buffer
    _, err = buf.ReadFrom(rc)
    _ = rc.Close()
    if err != nil {
      return "", newError(KindUnsupportedFormat, err, "read %s in %q", f.Name, path)
    }
    docXML = buf.Bytes()
    break
  }
  if docXML == nil {
    return "", newError(KindUnsupportedFormat, nil, "docx %q has no %s", path, docxDocumentXMLPath)
  }
  parts := wtTag.FindAllStringSubmatch(string(docXML), -1)
  if len(parts) == 0 {
    return "", nil
  }
  var b strings.Builder
  for i, p := range parts {
    if i > 0 {
      b.WriteByte(' ')
    }
    b.WriteString(strings.TrimSpace(p[1]))
  }
  return strings.TrimSpace(b.String()), nil
}
