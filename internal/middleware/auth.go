package middleware

import (
  "fmt"
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/golang-jwt/jwt/v5"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/requestdata"
)

// AuthMiddleware verifies the bearer tokens issued by the external
// identity provider and places the verified subject into requestdata.
// It never issues tokens itself.
type AuthMiddleware struct {
  log       *logger.Logger
  jwtSecret []byte
}

func NewAuthMiddleware(log *logger.Logger, jwtSecret string) *AuthMiddleware {
  middlewareLog := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLog, jwtSecret: []byte(jwtSecret)}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    userID, err := am.verify(tokenString)
    if err != nil {
      am.log.Debug("token verification failed", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    rd := &requestdata.RequestData{
      TokenString: tokenString,
      UserID:      userID,
    }
    c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
    c.Next()
  }
}

func (am *AuthMiddleware) verify(tokenString string) (string, error) {
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return am.jwtSecret, nil
  })
  if err != nil {
    return "", err
  }
  if !token.Valid {
    return "", fmt.Errorf("invalid token")
  }
  subject, err := token.Claims.GetSubject()
  if err != nil || subject == "" {
    return "", fmt.Errorf("token has no subject")
  }
  return subject, nil
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  return ""
}
