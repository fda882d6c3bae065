package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/stocktrace/stock_movement_app/internal/core/ports/services"
	"github.com/stocktrace/stock_movement_app/internal/dto"
	"github.com/stocktrace/stock_movement_app/internal/middleware"
)

// searchHandler exposes the movement search convenience endpoints. They live
// under /search/movements so the path parameters of the CRUD routes stay
// unambiguous.
type searchHandler struct {
	movementService portssvc.MovementSvcFacade
}

func newSearchHandler(movementService portssvc.MovementSvcFacade) *searchHandler {
	return &searchHandler{movementService: movementService}
}

// advancedSearch godoc
// @Summary Advanced movement search
// @Description Folds loose criteria into one predicate; criteria that cannot be parsed are ignored
// @Tags search
// @Accept json
// @Produce json
// @Param criteria body dto.SearchMovementsRequest true "Search criteria"
// @Success 200 {object} dto.MovementPageResponse
// @Router /search/movements [post]
func (h *searchHandler) advancedSearch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SearchMovementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for advancedSearch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	page, err := h.movementService.AdvancedSearch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementPageResponse(page))
}

// listByType godoc
// @Summary List movements by type
// @Tags search
// @Produce json
// @Param type path string true "Movement type (INCOMING or OUTGOING)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.MovementPageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Unsupported movement type"
// @Router /search/movements/by-type/{type} [get]
func (h *searchHandler) listByType(c *gin.Context) {
	var pageParams dto.PageParams
	if err := c.ShouldBindQuery(&pageParams); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	page, err := h.movementService.ListByType(c.Request.Context(), c.Param("type"), pageParams)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementPageResponse(page))
}

// listByPeriod godoc
// @Summary List movements between two dates
// @Tags search
// @Produce json
// @Param startDate query string true "Start date (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string true "End date (RFC 3339 or YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.MovementPageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Reversed date range"
// @Router /search/movements/by-period [get]
func (h *searchHandler) listByPeriod(c *gin.Context) {
	var pageParams dto.PageParams
	if err := c.ShouldBindQuery(&pageParams); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	page, err := h.movementService.ListByPeriod(c.Request.Context(), c.Query("startDate"), c.Query("endDate"), pageParams)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementPageResponse(page))
}

// listByProduct godoc
// @Summary List movements touching a product
// @Tags search
// @Produce json
// @Param productID path string true "Product ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.MovementPageResponse
// @Failure 400 {object} ErrorResponse
// @Router /search/movements/by-product/{productID} [get]
func (h *searchHandler) listByProduct(c *gin.Context) {
	var pageParams dto.PageParams
	if err := c.ShouldBindQuery(&pageParams); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	page, err := h.movementService.ListByProduct(c.Request.Context(), c.Param("productID"), pageParams)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementPageResponse(page))
}

// listByUser godoc
// @Summary List movements recorded by a user
// @Tags search
// @Produce json
// @Param userID path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.MovementPageResponse
// @Failure 400 {object} ErrorResponse
// @Router /search/movements/by-user/{userID} [get]
func (h *searchHandler) listByUser(c *gin.Context) {
	var pageParams dto.PageParams
	if err := c.ShouldBindQuery(&pageParams); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	page, err := h.movementService.ListByUser(c.Request.Context(), c.Param("userID"), pageParams)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementPageResponse(page))
}

// registerSearchRoutes registers the movement search endpoints.
func registerSearchRoutes(group *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newSearchHandler(movementService)

	search := group.Group("/search/movements")
	{
		search.POST("", h.advancedSearch)
		search.GET("/by-type/:type", h.listByType)
		search.GET("/by-period", h.listByPeriod)
		search.GET("/by-product/:productID", h.listByProduct)
		search.GET("/by-user/:userID", h.listByUser)
	}
}
