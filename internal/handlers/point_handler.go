package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/repositories"
	"github.com/ArowuTest/point-balance-service/internal/services"
	"github.com/gin-gonic/gin"
)

// PointHandler handles point-balance HTTP requests
type PointHandler struct {
	pointService services.PointService
}

// NewPointHandler creates a new PointHandler
func NewPointHandler(pointService services.PointService) *PointHandler {
	return &PointHandler{
		pointService: pointService,
	}
}

// SavePointRequest is the body of POST /points
type SavePointRequest struct {
	ID    string `json:"id"`
	Point *int64 `json:"point" binding:"required,min=0"`
}

// RefreshPointRequest is the body of PUT /points/:id/refresh
type RefreshPointRequest struct {
	Point       *int64     `json:"point" binding:"required,min=0"`
	RefreshTime *time.Time `json:"refreshTime"`
}

// Ok handles GET /
func (h *PointHandler) Ok(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// SaveRandom handles GET /save
func (h *PointHandler) SaveRandom(c *gin.Context) {
	if _, err := h.pointService.SaveRandom(c.Request.Context()); err != nil {
		respondError(c, "Failed to save point", err)
		return
	}
	c.String(http.StatusOK, "save")
}

// GetRandom handles GET /get. A missing record reads as 0; a store failure
// is reported, never answered with 0.
func (h *PointHandler) GetRandom(c *gin.Context) {
	_, point, _, err := h.pointService.GetRandomPoint(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to get point", err)
		return
	}
	c.JSON(http.StatusOK, point)
}

// Health handles GET /health
func (h *PointHandler) Health(c *gin.Context) {
	if err := h.pointService.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreatePoint handles POST /points
func (h *PointHandler) CreatePoint(c *gin.Context) {
	var request SavePointRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.pointService.Save(c.Request.Context(), request.ID, *request.Point)
	if err != nil {
		respondError(c, "Failed to save point", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetPoint handles GET /points/:id
func (h *PointHandler) GetPoint(c *gin.Context) {
	record, found, err := h.pointService.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to get point", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Point not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// RefreshPoint handles PUT /points/:id/refresh
func (h *PointHandler) RefreshPoint(c *gin.Context) {
	var request RefreshPointRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.pointService.Refresh(c.Request.Context(), c.Param("id"), *request.Point, request.RefreshTime)
	if err != nil {
		respondError(c, "Failed to refresh point", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeletePoint handles DELETE /points/:id
func (h *PointHandler) DeletePoint(c *gin.Context) {
	if err := h.pointService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete point", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps store errors onto status codes
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repositories.ErrEmptyID):
		status = http.StatusBadRequest
	case errors.Is(err, repositories.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": message + ": " + err.Error()})
}
