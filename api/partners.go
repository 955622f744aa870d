package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/islandguide/admin-api/model"
)

// GetPartnersHandler lists partners as view models.
func (h *ApiHandler) GetPartnersHandler(gc *gin.Context) {
	params := listParamsFromQuery(gc)

	records, total, err := h.Store.ListPartners(gc.Request.Context(), params)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list partners")
		respondStoreError(gc, err, "partners not found")
		return
	}

	items := make([]model.PartnerViewModel, 0, len(records))
	for _, r := range records {
		items = append(items, model.PartnerFromRecord(r, h.Log))
	}

	gc.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  params.Page,
	})
}

// GetPartnerHandler returns a single partner view model.
func (h *ApiHandler) GetPartnerHandler(gc *gin.Context) {
	id := gc.Param("id")

	record, err := h.Store.GetPartner(gc.Request.Context(), id)
	if err != nil {
		respondStoreError(gc, err, "partner not found")
		return
	}

	gc.JSON(http.StatusOK, model.PartnerFromRecord(record, h.Log))
}

// CreatePartnerHandler persists a new partner.
func (h *ApiHandler) CreatePartnerHandler(gc *gin.Context) {
	var vm model.PartnerViewModel
	if err := gc.BindJSON(&vm); err != nil {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "invalid partner payload"})
		return
	}

	result := h.Partners.Create(gc.Request.Context(), vm)
	if !result.Success {
		gc.JSON(http.StatusBadRequest, result)
		return
	}
	gc.JSON(http.StatusCreated, result)
}

// UpdatePartnerHandler applies a partial partner edit.
func (h *ApiHandler) UpdatePartnerHandler(gc *gin.Context) {
	id := gc.Param("id")

	var patch model.PartnerPatch
	if err := gc.BindJSON(&patch); err != nil {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "invalid partner payload"})
		return
	}

	result := h.Partners.Update(gc.Request.Context(), id, patch)
	if !result.Success {
		status := http.StatusBadRequest
		if result.Error == "partner not found" {
			status = http.StatusNotFound
		}
		gc.JSON(status, result)
		return
	}
	gc.JSON(http.StatusOK, result)
}

// DeletePartnerHandler removes a partner.
func (h *ApiHandler) DeletePartnerHandler(gc *gin.Context) {
	id := gc.Param("id")

	result := h.Partners.Delete(gc.Request.Context(), id)
	if !result.Success {
		status := http.StatusBadRequest
		if result.Error == "partner not found" {
			status = http.StatusNotFound
		}
		gc.JSON(status, result)
		return
	}
	gc.JSON(http.StatusOK, result)
}
