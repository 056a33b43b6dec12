package apperr

import (
  "errors"
  "fmt"
  "net/http"
)

// Kind classifies an error so the HTTP layer can map it to a status code
// and the client can tell "fix your input" from "try again later".
type Kind int

const (
  KindInternal Kind = iota
  KindValidation
  KindNotFound
  KindForbidden
  KindExtraction
  KindUpstream
)

func (k Kind) String() string {
  switch k {
  case KindValidation:
    return "validation"
  case KindNotFound:
    return "not_found"
  case KindForbidden:
    return "forbidden"
  case KindExtraction:
    return "extraction"
  case KindUpstream:
    return "upstream"
  default:
    return "internal"
  }
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

func New(kind Kind, msg string) error {
  return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...interface{}) error {
  return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) error {
  if err == nil {
    return nil
  }
  return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
  var ae *Error
  if errors.As(err, &ae) {
    return ae.Kind
  }
  return KindInternal
}

// Status maps an error kind to the HTTP status handlers answer with.
func Status(err error) int {
  switch KindOf(err) {
  case KindValidation:
    return http.StatusBadRequest
  case KindNotFound:
    return http.StatusNotFound
  case KindForbidden:
    return http.StatusForbidden
  case KindExtraction:
    return http.StatusUnprocessableEntity
  case KindUpstream:
    return http.StatusBadGateway
  default:
    return http.StatusInternalServerError
  }
}
