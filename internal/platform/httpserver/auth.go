package httpserver

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type identityClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// resolveUserID extracts the caller identity. A bearer token signed with the
// configured secret wins; the X-User-Id header is the fallback for internal
// callers and local development.
func (s *Server) resolveUserID(r *http.Request) string {
	if userID := s.userIDFromBearer(r); userID != "" {
		return userID
	}
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func (s *Server) userIDFromBearer(r *http.Request) string {
	if len(s.jwtSecret) == 0 {
		return ""
	}
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return ""
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		s.logger.Warn("bearer token rejected",
			"event", "http_bearer_rejected",
			"module", "internal/platform/httpserver",
			"layer", "platform",
		)
		return ""
	}
	if claims.UserID != "" {
		return strings.TrimSpace(claims.UserID)
	}
	return strings.TrimSpace(claims.Subject)
}
