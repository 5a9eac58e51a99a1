package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"supernova/internal/config"
	"supernova/internal/logger"
	"supernova/internal/repository/db"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// UserContextKey carries the authenticated *Claims through request contexts
const UserContextKey contextKey = "user"

// Claims is the JWT payload identifying a signed-in user
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and validates JWT tokens and provides the auth middleware
type Manager struct {
	secret     []byte
	expiration time.Duration
}

// NewManager creates a token manager from auth configuration
func NewManager(cfg config.AuthConfig) *Manager {
	return &Manager{
		secret:     cfg.JWTSecret,
		expiration: cfg.TokenExpiration,
	}
}

// GenerateToken signs a token for a user
func (m *Manager) GenerateToken(user *db.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and verifies a token string
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeAuthError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := errorResponse{Code: status, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	json.NewEncoder(w).Encode(resp)
}

// Require rejects requests without a valid bearer token
func (m *Manager) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Invalid or missing token", err)
			return
		}
		if claims == nil {
			writeAuthError(w, http.StatusUnauthorized, "Missing authorization header", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Optional attaches claims when a valid bearer token is present and lets
// anonymous requests through untouched. A malformed token is still rejected.
func (m *Manager) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Invalid token", err)
			return
		}
		if claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserContextKey, claims))
		}
		next.ServeHTTP(w, r)
	}
}

// claimsFromRequest returns (nil, nil) when no Authorization header is set
func (m *Manager) claimsFromRequest(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, jwt.ErrTokenMalformed
	}

	claims, err := m.ValidateToken(parts[1])
	if err != nil {
		logger.Log.WithError(err).Debug("Token validation failed")
		return nil, err
	}
	return claims, nil
}

// FromContext extracts the claims set by the middleware
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	return claims, ok
}

// UsernameFromContext returns the signed-in username, or "" for anonymous
// requests
func UsernameFromContext(ctx context.Context) string {
	if claims, ok := FromContext(ctx); ok {
		return claims.Username
	}
	return ""
}
