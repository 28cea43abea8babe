// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/infrastructure/config"
)

type contextKey string

const (
	memberIDKey contextKey = "member_id"
	foyerIDKey  contextKey = "foyer_id"
)

// Claims are the JWT claims issued by the identity provider. The foyer id
// travels as a custom claim.
type Claims struct {
	FoyerID string `json:"foyer_id"`
	jwt.RegisteredClaims
}

// Authenticator verifies bearer tokens. Tokens are issued elsewhere; this
// server only validates them.
type Authenticator struct {
	secret    []byte
	issuer    string
	audiences []string
	logger    *zap.Logger
}

// NewAuthenticator creates a token verifier from configuration
func NewAuthenticator(cfg config.AuthConfig, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
		audiences: cfg.Audiences,
		logger:    logger.Named("auth"),
	}
}

// Middleware rejects requests without a valid bearer token and stores the
// member and foyer ids on the request context
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "missing bearer token")
			return
		}

		claims, err := a.verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.logger.Debug("token rejected", zap.Error(err))
			unauthorized(w, "invalid token")
			return
		}

		memberID, err := uuid.Parse(claims.Subject)
		if err != nil {
			unauthorized(w, "invalid subject claim")
			return
		}
		foyerID, err := uuid.Parse(claims.FoyerID)
		if err != nil {
			unauthorized(w, "invalid foyer claim")
			return
		}

		ctx := context.WithValue(r.Context(), memberIDKey, memberID)
		ctx = context.WithValue(ctx, foyerIDKey, foyerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) verify(tokenString string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if a.issuer != "" {
		options = append(options, jwt.WithIssuer(a.issuer))
	}
	for _, aud := range a.audiences {
		options = append(options, jwt.WithAudience(aud))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// MemberID extracts the authenticated member id from the context
func MemberID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(memberIDKey).(uuid.UUID)
	return id, ok
}

// FoyerID extracts the authenticated member's household id from the context
func FoyerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(foyerIDKey).(uuid.UUID)
	return id, ok
}

// WithIdentity injects an identity into a context. Intended for tests.
func WithIdentity(ctx context.Context, memberID, foyerID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, memberIDKey, memberID)
	return context.WithValue(ctx, foyerIDKey, foyerID)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"success":false,"error":{"code":"UNAUTHORIZED","message":%q}}`, message)
}
