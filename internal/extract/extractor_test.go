package extract

import (
  "archive/zip"
  "bytes"
  "context"
  "errors"
  "os"
  "path/filepath"
  "testing"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

func newTestService(t *testing.T, cfg Config) *Service {
  t.Helper()
  return NewService(logger.NewNop(), cfg)
}

func kindOf(t *testing.T, err error) Kind {
  t.Helper()
  var ee *Error
  if !errors.As(err, &ee) {
    t.Fatalf("expected *extract.Error, got %T: %v", err, err)
  }
  return ee.Kind
}

func TestExtract_rawText(t *testing.T) {
  s := newTestService(t, Config{})
  got, err := s.Extract(context.Background(), types.SourceTypeText, "  Hello there \n")
  if err != nil {
    t.Fatalf("Extract: %v", err)
  }
  if got != "Hello there" {
    t.Errorf("got %q", got)
  }
}

func TestExtract_rawTextEmpty(t *testing.T) {
  s := newTestService(t, Config{})
  got, err := s.Extract(context.Background(), types.SourceTypeText, "   ")
  if err != nil {
    t.Fatalf("empty content must not error, got %v", err)
  }
  if got != "" {
    t.Errorf("got %q", got)
  }
}

func TestExtract_txtFile(t *testing.T) {
  dir := t.TempDir()
  path := filepath.Join(dir, "notes.txt")
  if err := os.WriteFile(path, []byte("File content\nline 2"), 0600); err != nil {
    t.Fatal(err)
  }
  s := newTestService(t, Config{})
  got, err := s.Extract(context.Background(), types.SourceTypeTXT, path)
  if err != nil {
    t.Fatalf("Extract: %v", err)
  }
  if got != "File content\nline 2" {
    t.Errorf("got %q", got)
  }
}

func TestExtract_txtFileInvalidUTF8(t *testing.T) {
  dir := t.TempDir()
  path := filepath.Join(dir, "notes.txt")
  if err := os.WriteFile(path, []byte("hello\x80world"), 0600); err != nil {
    t.Fatal(err)
  }
  s := newTestService(t, Config{})
  got, err := s.Extract(context.Background(), types.SourceTypeTXT, path)
  if err != nil {
    t.Fatalf("Extract: %v", err)
  }
  if got != "hello�world" {
    t.Errorf("got %q", got)
  }
}

func TestExtract_txtFileMissing(t *testing.T) {
  s := newTestService(t, Config{})
  _, err := s.Extract(context.Background(), types.SourceTypeTXT, filepath.Join(t.TempDir(), "nope.txt"))
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := kindOf(t, err); kind != KindNotFound {
    t.Errorf("kind = %v, want KindNotFound", kind)
  }
}

func writeDocx(t *testing.T, path, documentXML string) {
  t.Helper()
  var buf bytes.Buffer
  zw := zip.NewWriter(&buf)
  w, err := zw.Create("word/document.xml")
  if err != nil {
    t.Fatal(err)
  }
  if _, err := w.Write([]byte(documentXML)); err != nil {
    t.Fatal(err)
  }
  if err := zw.Close(); err != nil {
    t.Fatal(err)
  }
  if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
    t.Fatal(err)
  }
}

func TestExtract_docx(t *testing.T) {
  path := filepath.Join(t.TempDir(), "doc.docx")
  writeDocx(t, path, `<w:document><w:body><w:p w:rsidR="0"><w:r><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve">world</w:t></w:r></w:p></w:body></w:document>`)
  s := newTestService(t, Config{})
  got, err := s.Extract(context.Background(), types.SourceTypeDocs, path)
  if err != nil {
    t.Fatalf("Extract: %v", err)
  }
  if got != "Hello world" {
    t.Errorf("got %q", got)
  }
}

func TestExtract_docxNotZip(t *testing.T) {
  path := filepath.Join(t.TempDir(), "doc.docx")
  if err := os.WriteFile(path, []byte("plain text, not a zip"), 0600); err != nil {
    t.Fatal(err)
  }
  s := newTestService(t, Config{})
  _, err := s.Extract(context.Background(), types.SourceTypeDocs, path)
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := kindOf(t, err); kind != KindUnsupportedFormat {
    t.Errorf("kind = %v, want KindUnsupportedFormat", kind)
  }
}

func TestExtract_docxNoText(t *testing.T) {
  path := filepath.Join(t.TempDir(), "doc.docx")
  writeDocx(t, path, `<w:document><w:body></w:body></w:document>`)
  s := newTestService(t, Config{})
  got, err := s.Extract(context.Background(), types.SourceTypeDocs, path)
  if err != nil {
    t.Fatalf("empty document must not error, got %v", err)
  }
  if got != "" {
    t.Errorf("got %q", got)
  }
}

func TestExtract_pdfInvalid(t *testing.T) {
  path := filepath.Join(t.TempDir(), "doc.pdf")
  if err := os.WriteFile(path, []byte("not a pdf"), 0600); err != nil {
    t.Fatal(err)
  }
  s := newTestService(t, Config{})
  _, err := s.Extract(context.Background(), types.SourceTypePDF, path)
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := kindOf(t, err); kind != KindUnsupportedFormat {
    t.Errorf("kind = %v, want KindUnsupportedFormat", kind)
  }
}

func TestExtract_unknownType(t *testing.T) {
  s := newTestService(t, Config{})
  _, err := s.Extract(context.Background(), types.SourceType("carrier-pigeon"), "coo")
  if err == nil {
    t.Fatal("expected error")
  }
  if kind := kindOf(t, err); kind != KindUnsupportedFormat {
    t.Errorf("kind = %v, want KindUnsupportedFormat", kind)
  }
}
