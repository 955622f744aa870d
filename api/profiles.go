package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/islandguide/admin-api/app"
	"github.com/islandguide/admin-api/model"
)

// GetProfilesHandler lists profiles as view models.
func (h *ApiHandler) GetProfilesHandler(gc *gin.Context) {
	params := listParamsFromQuery(gc)

	records, total, err := h.Store.ListProfiles(gc.Request.Context(), params)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list profiles")
		respondStoreError(gc, err, "profiles not found")
		return
	}

	items := make([]model.ProfileViewModel, 0, len(records))
	for _, r := range records {
		items = append(items, model.ProfileFromRecord(r, h.Log))
	}

	gc.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  params.Page,
	})
}

// GetProfileHandler returns a single profile view model.
func (h *ApiHandler) GetProfileHandler(gc *gin.Context) {
	id := gc.Param("id")

	record, err := h.Store.GetProfile(gc.Request.Context(), id)
	if err != nil {
		respondStoreError(gc, err, "profile not found")
		return
	}

	gc.JSON(http.StatusOK, model.ProfileFromRecord(record, h.Log))
}

// UpdateProfileHandler applies a partial profile edit. The admin flag is
// not part of the patch shape and cannot be changed here.
func (h *ApiHandler) UpdateProfileHandler(gc *gin.Context) {
	id := gc.Param("id")
	h.applyProfilePatch(gc, id)
}

// GetCurrentUserHandler returns the authenticated user's own profile.
func (h *ApiHandler) GetCurrentUserHandler(gc *gin.Context) {
	userId, ok := app.CurrentUserID(gc)
	if !ok {
		gc.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	record, err := h.Store.GetProfile(gc.Request.Context(), userId)
	if err != nil {
		respondStoreError(gc, err, "profile not found")
		return
	}

	gc.JSON(http.StatusOK, model.ProfileFromRecord(record, h.Log))
}

// UpdateCurrentUserHandler lets the authenticated user edit their own
// profile.
func (h *ApiHandler) UpdateCurrentUserHandler(gc *gin.Context) {
	userId, ok := app.CurrentUserID(gc)
	if !ok {
		gc.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	h.applyProfilePatch(gc, userId)
}

func (h *ApiHandler) applyProfilePatch(gc *gin.Context, id string) {
	var patch model.ProfilePatch
	if err := gc.BindJSON(&patch); err != nil {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	if err := h.Store.UpdateProfile(gc.Request.Context(), id, patch.Columns()); err != nil {
		h.Log.Error().Err(err).Str("profile_id", id).Msg("failed to update profile")
		respondStoreError(gc, err, "profile not found")
		return
	}

	gc.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
