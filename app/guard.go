package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authCookieName = "islandguide_auth_token"

// Claims is the JWT payload carried by access and refresh tokens.
type Claims struct {
	UserId string `json:"user_id"`
	jwt.RegisteredClaims
}

// AdminChecker answers whether a user holds the admin flag.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userId string) (bool, error)
}

// AuthOutcome tags the result of an authorization check. Exactly one of
// the three states applies; handlers never re-derive it from booleans.
type AuthOutcome int

const (
	AuthUnauthorized AuthOutcome = iota // no valid identity
	AuthForbidden                       // valid identity, lacking the admin flag
	AuthOk                              // valid identity with the admin flag
)

// AuthResult is the tagged outcome plus the principal when one exists.
type AuthResult struct {
	Outcome AuthOutcome
	UserId  string
}

// tokenFromRequest pulls the JWT from the auth cookie, falling back to
// the Authorization header.
func tokenFromRequest(gc *gin.Context) (string, bool) {
	tokenStr, err := gc.Cookie(authCookieName)
	if err == nil && tokenStr != "" {
		return tokenStr, true
	}

	authHeader := gc.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// Authenticate verifies the request's JWT and returns its claims.
func (app *App) Authenticate(gc *gin.Context) (*Claims, bool) {
	tokenStr, found := tokenFromRequest(gc)
	if !found {
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return app.JwtKey, nil
	})
	if err != nil || !token.Valid || claims.UserId == "" {
		return nil, false
	}
	return claims, true
}

// Authorize runs the full admin check and returns the tagged outcome.
func (app *App) Authorize(gc *gin.Context, checker AdminChecker) AuthResult {
	claims, ok := app.Authenticate(gc)
	if !ok {
		return AuthResult{Outcome: AuthUnauthorized}
	}

	isAdmin, err := checker.IsAdmin(gc.Request.Context(), claims.UserId)
	if err != nil {
		app.Logger.Error().Err(err).Str("user_id", claims.UserId).Msg("admin lookup failed")
		return AuthResult{Outcome: AuthUnauthorized}
	}
	if !isAdmin {
		return AuthResult{Outcome: AuthForbidden, UserId: claims.UserId}
	}
	return AuthResult{Outcome: AuthOk, UserId: claims.UserId}
}

// RequireAuth rejects requests without a valid token.
func (app *App) RequireAuth() gin.HandlerFunc {
	return func(gc *gin.Context) {
		claims, ok := app.Authenticate(gc)
		if !ok {
			gc.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization token"})
			return
		}
		gc.Set("claims", claims)
		gc.Set("userId", claims.UserId)
		gc.Next()
	}
}

// RequireAdmin rejects requests whose principal is missing or not an
// admin. It subsumes RequireAuth.
func (app *App) RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(gc *gin.Context) {
		result := app.Authorize(gc, checker)
		switch result.Outcome {
		case AuthUnauthorized:
			gc.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization token"})
		case AuthForbidden:
			gc.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		default:
			gc.Set("userId", result.UserId)
			gc.Next()
		}
	}
}

// CurrentUserID returns the authenticated user's id, set by the guard.
func CurrentUserID(gc *gin.Context) (string, bool) {
	userIdVal, exists := gc.Get("userId")
	if !exists {
		return "", false
	}
	userId, ok := userIdVal.(string)
	if !ok || userId == "" {
		return "", false
	}
	return userId, true
}
