package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/islandguide/admin-api/app"
	"github.com/islandguide/admin-api/model"
	"github.com/islandguide/admin-api/store"
)

func (h *ApiHandler) signToken(userId string, expiresAt time.Time) (string, error) {
	claims := &app.Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.App.JwtKey)
}

// LoginHandler checks credentials and issues access and refresh tokens.
func (h *ApiHandler) LoginHandler(gc *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := gc.BindJSON(&credentials); err != nil || credentials.Email == "" || credentials.Password == "" {
		gc.JSON(http.StatusUnauthorized, gin.H{"error": "credentials required"})
		return
	}

	user, err := h.Store.GetProfileByEmail(gc.Request.Context(), credentials.Email)
	if err != nil || app.ComparePasswords(user.PasswordHash, credentials.Password) != nil {
		gc.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	accessExp := time.Now().Add(time.Duration(h.App.Config.AuthTokenExpirationTime) * time.Second)
	refreshExp := time.Now().Add(time.Duration(h.App.Config.RefreshTokenDays) * 24 * time.Hour)

	accessTokenStr, err := h.signToken(user.Id, accessExp)
	if err != nil {
		gc.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}

	refreshTokenStr, err := h.signToken(user.Id, refreshExp)
	if err != nil {
		gc.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}

	gc.JSON(http.StatusOK, gin.H{
		"message":       "login successful",
		"user_id":       user.Id,
		"username":      user.Username,
		"is_admin":      user.IsAdmin,
		"access_token":  accessTokenStr,
		"refresh_token": refreshTokenStr,
	})
}

// SignupHandler creates a new profile. New accounts are never admins.
func (h *ApiHandler) SignupHandler(gc *gin.Context) {
	var payload struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := gc.BindJSON(&payload); err != nil || payload.Email == "" || payload.Password == "" {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}
	if len(payload.Password) < 8 {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}

	hash, err := app.EncryptPassword(payload.Password)
	if err != nil {
		gc.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	record := model.ProfileRecord{
		Name:         payload.Name,
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: hash,
	}

	id, err := h.Store.InsertProfile(gc.Request.Context(), record)
	if err != nil {
		status := app.DbErrorToHTTP(err)
		msg := "failed to create account"
		if status == http.StatusConflict {
			msg = "email or username already in use"
		}
		h.Log.Error().Err(err).Str("email", payload.Email).Msg("signup failed")
		gc.JSON(status, gin.H{"error": msg})
		return
	}

	gc.JSON(http.StatusCreated, gin.H{"user_id": id})
}

// RefreshHandler exchanges a valid refresh token for a new access token.
func (h *ApiHandler) RefreshHandler(gc *gin.Context) {
	authHeader := gc.GetHeader("Authorization")
	if authHeader == "" {
		gc.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
		return
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		gc.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		return
	}
	refreshToken := parts[1]

	claims := &app.Claims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return h.App.JwtKey, nil
	})
	if err != nil || !tkn.Valid {
		gc.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	// Reject tokens for accounts that no longer exist.
	if _, err := h.Store.GetProfile(gc.Request.Context(), claims.UserId); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			gc.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}
		gc.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	accessExp := time.Now().Add(time.Duration(h.App.Config.AuthTokenExpirationTime) * time.Second)
	accessTokenStr, err := h.signToken(claims.UserId, accessExp)
	if err != nil {
		gc.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign access token"})
		return
	}

	gc.Header("Authorization", "Bearer "+accessTokenStr)
	gc.JSON(http.StatusOK, gin.H{
		"message":      "token refreshed",
		"access_token": accessTokenStr,
		"expires_in":   int(time.Until(accessExp).Seconds()),
	})
}
