package extract

import (
  "os"
  "strings"
)

// extractTxt reads the file at path verbatim, replacing any invalid
// UTF-8 sequences with the replacement rune.
func extractTxt(path string) (string, error) {
  content, err := os.ReadFile(path)
  if err != nil {
    if os.IsNotExist(err) {
      return "", newError(KindNotFound, err, "txt file %q not found", path)
    }
    return "", newError(KindNotFound, err, "read txt %q", path)
  }
  return strings.ToValidUTF8(string(content), "�"), nil
}
