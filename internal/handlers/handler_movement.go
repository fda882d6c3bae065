package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/stocktrace/stock_movement_app/internal/core/ports/services"
	"github.com/stocktrace/stock_movement_app/internal/dto"
	"github.com/stocktrace/stock_movement_app/internal/middleware"
)

// movementHandler handles HTTP requests related to stock movements.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

// newMovementHandler creates a new movementHandler.
func newMovementHandler(movementService portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: movementService}
}

// createMovement godoc
// @Summary Record a stock movement
// @Description Creates a movement with its line items and applies the stock deltas per line
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse "Invalid request or unknown product reference"
// @Failure 422 {object} ErrorResponse "Insufficient stock"
// @Failure 401 {object} ErrorResponse
// @Router /movements [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List movements
// @Description Lists movements matching loose query parameters, paginated and sorted by movement date descending
// @Tags movements
// @Produce json
// @Param movementID query string false "Exact movement ID"
// @Param type query string false "Movement type"
// @Param destination query string false "Destination substring"
// @Param startDate query string false "Start date (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "End date (RFC 3339 or YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.MovementPageResponse
// @Failure 404 {object} ErrorResponse
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	page, err := h.movementService.ListMovements(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementPageResponse(page))
}

// getMovement godoc
// @Summary Get a movement
// @Description Retrieves a movement by ID with its line items
// @Tags movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /movements/{movementID} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	movement, err := h.movementService.GetMovementByID(c.Request.Context(), c.Param("movementID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// updateMovement godoc
// @Summary Update a movement
// @Description Applies a partial update; line items and type are frozen 24 hours after the movement date
// @Tags movements
// @Accept json
// @Produce json
// @Param movementID path string true "Movement ID"
// @Param movement body dto.UpdateMovementRequest true "Changes"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Edit window elapsed"
// @Router /movements/{movementID} [put]
func (h *movementHandler) updateMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.UpdateMovement(c.Request.Context(), c.Param("movementID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Description Deletes a movement within 3 days of its movement date, reversing its stock effect
// @Tags movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse "The deleted movement"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Delete window elapsed"
// @Router /movements/{movementID} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.DeleteMovement(c.Request.Context(), c.Param("movementID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// activateMovement godoc
// @Summary Activate a movement
// @Tags movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} ErrorResponse
// @Router /movements/{movementID}/activate [post]
func (h *movementHandler) activateMovement(c *gin.Context) {
	h.setActive(c, true)
}

// deactivateMovement godoc
// @Summary Deactivate a movement
// @Tags movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} ErrorResponse
// @Router /movements/{movementID}/deactivate [post]
func (h *movementHandler) deactivateMovement(c *gin.Context) {
	h.setActive(c, false)
}

func (h *movementHandler) setActive(c *gin.Context, active bool) {
	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	toggle := h.movementService.DeactivateMovement
	if active {
		toggle = h.movementService.ActivateMovement
	}

	movement, err := toggle(c.Request.Context(), c.Param("movementID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// registerMovementRoutes registers movement CRUD and lifecycle routes.
func registerMovementRoutes(group *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(movementService)

	movements := group.Group("/movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:movementID", h.getMovement)
		movements.PUT("/:movementID", h.updateMovement)
		movements.DELETE("/:movementID", h.deleteMovement)
		movements.POST("/:movementID/activate", h.activateMovement)
		movements.POST("/:movementID/deactivate", h.deactivateMovement)
	}
}
