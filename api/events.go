package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/islandguide/admin-api/model"
)

// GetEventsHandler lists events as view models, paged and searchable.
func (h *ApiHandler) GetEventsHandler(gc *gin.Context) {
	params := listParamsFromQuery(gc)

	records, total, err := h.Store.ListEvents(gc.Request.Context(), params)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list events")
		respondStoreError(gc, err, "events not found")
		return
	}

	items := make([]model.EventViewModel, 0, len(records))
	for _, r := range records {
		items = append(items, model.EventFromRecord(r, h.Log))
	}

	gc.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  params.Page,
	})
}

// GetEventHandler returns a single event view model.
func (h *ApiHandler) GetEventHandler(gc *gin.Context) {
	id := gc.Param("id")

	record, err := h.Store.GetEvent(gc.Request.Context(), id)
	if err != nil {
		respondStoreError(gc, err, "event not found")
		return
	}

	gc.JSON(http.StatusOK, model.EventFromRecord(record, h.Log))
}

// CreateEventHandler persists a new event from its view model.
func (h *ApiHandler) CreateEventHandler(gc *gin.Context) {
	var vm model.EventViewModel
	if err := gc.BindJSON(&vm); err != nil {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	result := h.Events.Create(gc.Request.Context(), vm)
	if !result.Success {
		gc.JSON(http.StatusBadRequest, result)
		return
	}
	gc.JSON(http.StatusCreated, result)
}

// UpdateEventHandler applies a partial event edit.
func (h *ApiHandler) UpdateEventHandler(gc *gin.Context) {
	id := gc.Param("id")

	var patch model.EventPatch
	if err := gc.BindJSON(&patch); err != nil {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	result := h.Events.Update(gc.Request.Context(), id, patch)
	if !result.Success {
		status := http.StatusBadRequest
		if result.Error == "event not found" {
			status = http.StatusNotFound
		}
		gc.JSON(status, result)
		return
	}
	gc.JSON(http.StatusOK, result)
}
