package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/islandguide/admin-api/model"
)

// GetServicesHandler lists services as view models.
func (h *ApiHandler) GetServicesHandler(gc *gin.Context) {
	params := listParamsFromQuery(gc)

	records, total, err := h.Store.ListServices(gc.Request.Context(), params)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list services")
		respondStoreError(gc, err, "services not found")
		return
	}

	items := make([]model.ServiceViewModel, 0, len(records))
	for _, r := range records {
		items = append(items, model.ServiceFromRecord(r, h.Log))
	}

	gc.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  params.Page,
	})
}

// GetServiceHandler returns a single service view model.
func (h *ApiHandler) GetServiceHandler(gc *gin.Context) {
	id := gc.Param("id")

	record, err := h.Store.GetService(gc.Request.Context(), id)
	if err != nil {
		respondStoreError(gc, err, "service not found")
		return
	}

	gc.JSON(http.StatusOK, model.ServiceFromRecord(record, h.Log))
}

// CreateServiceHandler persists a new service.
func (h *ApiHandler) CreateServiceHandler(gc *gin.Context) {
	var vm model.ServiceViewModel
	if err := gc.BindJSON(&vm); err != nil {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "invalid service payload"})
		return
	}

	result := h.Services.Create(gc.Request.Context(), vm)
	if !result.Success {
		gc.JSON(http.StatusBadRequest, result)
		return
	}
	gc.JSON(http.StatusCreated, result)
}

// UpdateServiceHandler applies a partial service edit.
func (h *ApiHandler) UpdateServiceHandler(gc *gin.Context) {
	id := gc.Param("id")

	var patch model.ServicePatch
	if err := gc.BindJSON(&patch); err != nil {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "invalid service payload"})
		return
	}

	result := h.Services.Update(gc.Request.Context(), id, patch)
	if !result.Success {
		status := http.StatusBadRequest
		if result.Error == "service not found" {
			status = http.StatusNotFound
		}
		gc.JSON(status, result)
		return
	}
	gc.JSON(http.StatusOK, result)
}

// DeleteServiceHandler removes a service.
func (h *ApiHandler) DeleteServiceHandler(gc *gin.Context) {
	id := gc.Param("id")

	result := h.Services.Delete(gc.Request.Context(), id)
	if !result.Success {
		status := http.StatusBadRequest
		if result.Error == "service not found" {
			status = http.StatusNotFound
		}
		gc.JSON(status, result)
		return
	}
	gc.JSON(http.StatusOK, result)
}
