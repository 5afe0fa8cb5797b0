package trip

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{
		service: s,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/estimate", h.EstimateHandler)
	api.GET("/trips", h.ListTripsHandler)
	api.POST("/trips", h.SaveTripHandler)
	api.POST("/export-pdf", h.ExportPDFHandler)
}

// EstimateHandler godoc
// @Summary      Estimate a trip
// @Description  Prices flights, stay, food, activities and misc for a trip and stores the result
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body TripRequest true "Trip request"
// @Success      200 {object} Trip
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /api/estimate [post]
func (h *Handler) EstimateHandler(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	trip, err := h.service.Estimate(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// ListTripsHandler godoc
// @Summary      List saved trips
// @Tags         trips
// @Produce      json
// @Success      200 {array} Trip
// @Failure      500 {object} map[string]string
// @Router       /api/trips [get]
func (h *Handler) ListTripsHandler(c *gin.Context) {
	trips, err := h.service.List(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

// SaveTripHandler godoc
// @Summary      Save a computed trip
// @Description  Stores a trip computed earlier; replaying the same id is accepted
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body Trip true "Trip"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /api/trips [post]
func (h *Handler) SaveTripHandler(c *gin.Context) {
	var t Trip
	if err := c.ShouldBindJSON(&t); err != nil {
		sendBindError(c, err)
		return
	}

	if _, err := h.service.Save(c.Request.Context(), t); err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// ExportPDFHandler godoc
// @Summary      Export a trip summary
// @Tags         trips
// @Accept       json
// @Produce      application/pdf
// @Param        request body Trip true "Trip"
// @Success      200 {file} file
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /api/export-pdf [post]
func (h *Handler) ExportPDFHandler(c *gin.Context) {
	var t Trip
	if err := c.ShouldBindJSON(&t); err != nil {
		sendBindError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportPDF(c.Request.Context(), t, &buf); err != nil {
		sendError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=trip-summary.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// HealthHandler reports whether the trip store is reachable.
func (h *Handler) HealthHandler(c *gin.Context) {
	if err := h.service.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func sendBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "Request body too large",
			"code":  ErrorCodeValidation,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Invalid JSON body",
		"code":  ErrorCodeValidation,
	})
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal Server Error",
		"code":  ErrorCodeInternalFailure,
	})
}
