// Package api contains the Gin handlers for the admin dashboard API.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/islandguide/admin-api/action"
	"github.com/islandguide/admin-api/app"
	"github.com/islandguide/admin-api/invalidate"
	"github.com/islandguide/admin-api/store"
)

// ApiHandler bundles everything the route handlers need.
type ApiHandler struct {
	App      *app.App
	Store    *store.Store
	Events   *action.EventDispatcher
	Partners *action.PartnerDispatcher
	Services *action.ServiceDispatcher
	Log      *zerolog.Logger
}

func NewApiHandler(a *app.App, s *store.Store, inv invalidate.Invalidator) *ApiHandler {
	log := &a.Logger
	return &ApiHandler{
		App:      a,
		Store:    s,
		Events:   action.NewEventDispatcher(s, inv, log),
		Partners: action.NewPartnerDispatcher(s, inv, log),
		Services: action.NewServiceDispatcher(s, inv, log),
		Log:      log,
	}
}

// listParamsFromQuery reads page, pageSize and search from the query
// string. Bad numbers fall back to defaults rather than erroring.
func listParamsFromQuery(gc *gin.Context) store.ListParams {
	page, _ := strconv.Atoi(gc.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(gc.DefaultQuery("pageSize", "20"))
	return store.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   gc.Query("search"),
	}
}

func respondStoreError(gc *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		gc.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	gc.JSON(app.DbErrorToHTTP(err), gin.H{"error": "database error"})
}
