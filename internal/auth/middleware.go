package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "user_id"

func UserIDFrom(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok && userID != 0
}

// ParseToken validates a session token and returns its user and expiry.
func (h *AuthHandler) ParseToken(tokenString string) (uint, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, time.Time{}, fmt.Errorf("invalid token")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, time.Time{}, fmt.Errorf("invalid token claims")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, time.Time{}, fmt.Errorf("token has no expiry")
	}
	return uint(userIDFloat), exp.Time, nil
}

// Middleware authenticates operations that declare a security requirement.
// The token comes from the auth cookie or a bearer header. Sessions past half
// their lifetime get a fresh cookie.
func (h *AuthHandler) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op == nil || len(op.Security) == 0 {
			next(ctx)
			return
		}

		tokenString := tokenFrom(ctx)
		if tokenString == "" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: No token found")
			return
		}

		userID, exp, err := h.ParseToken(tokenString)
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		if time.Until(exp) < TokenDuration/2 {
			if newToken, err := h.GenerateToken(userID); err == nil {
				ctx.AppendHeader("Set-Cookie", h.sessionCookie(newToken).String())
			}
		}

		next(huma.WithValue(ctx, UserIDKey, userID))
	}
}

func tokenFrom(ctx huma.Context) string {
	if authz := ctx.Header("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	cookies, err := http.ParseCookie(ctx.Header("Cookie"))
	if err != nil {
		return ""
	}
	for _, c := range cookies {
		if c.Name == CookieName {
			return c.Value
		}
	}
	return ""
}
