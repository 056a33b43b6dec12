package extract

import (
  "fmt"
)

// Kind classifies an extraction failure. Empty content is not a
// failure: extractors return ("", nil) when a locator resolves but
// yields no text, and KindEmptyResult exists only for callers that
// want to label that condition.
type Kind int

const (
  KindNotFound Kind = iota
  KindUnsupportedFormat
  KindUpstreamUnavailable
  KindInvalidLocator
  KindEmptyResult
)

func (k Kind) String() string {
  switch k {
  case KindNotFound:
    return "not_found"
  case KindUnsupportedFormat:
    return "unsupported_format"
  case KindUpstreamUnavailable:
    return "upstream_unavailable"
  case KindInvalidLocator:
    return "invalid_locator"
  case KindEmptyResult:
    return "empty_result"
  }
  return "unknown"
}

type Error struct {
  Kind    Kind
  Message string
  Err     error
}

func (e *Error) Error() string {
  if e.Err != nil {
    return fmt.Sprintf("%s: %v", e.Message, e.Err)
  }
  return e.Message
}

func (e *Error) Unwrap() error {
  return e.Err
}

func newError(kind Kind, err error, format string, args ...interface{}) error {
  return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
