package requestdata

import (
  "context"
)

type key struct{}

var requestDataKey key

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// RequestData carries the verified identity for the current request.
// UserID is the opaque subject string issued by the external identity
// provider; it is empty on the public embed surface.
type RequestData struct {
  TokenString string
  UserID      string
}
