package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cuts と /api/flavours のハンドラ
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, optionalAuth, requireAuth, adminOnly echo.MiddlewareFunc) {
	e.GET("/api/cuts", h.listCuts, optionalAuth)
	e.POST("/api/cuts", h.createCut, requireAuth, adminOnly)
	e.GET("/api/flavours", h.listFlavours, optionalAuth)
	e.POST("/api/flavours", h.createFlavour, requireAuth, adminOnly)
	e.DELETE("/api/flavours/:id", h.deleteFlavour, requireAuth, adminOnly)
}

func (h *CatalogHandler) listCuts(c echo.Context) error {
	items, err := h.uc.ListCuts(c.Request().Context())
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusOK, "Cuts retrieved successfully", items)
}

func (h *CatalogHandler) createCut(c echo.Context) error {
	var req createNameRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	cut, err := h.uc.CreateCut(c.Request().Context(), req.Name)
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusCreated, "Cut created successfully", cut)
}

func (h *CatalogHandler) listFlavours(c echo.Context) error {
	items, err := h.uc.ListFlavours(c.Request().Context())
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusOK, "Flavours retrieved successfully", items)
}

func (h *CatalogHandler) createFlavour(c echo.Context) error {
	var req createNameRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	flavour, err := h.uc.CreateFlavour(c.Request().Context(), req.Name)
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusCreated, "Flavour created successfully", flavour)
}

func (h *CatalogHandler) deleteFlavour(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid id")
	}

	if err := h.uc.DeleteFlavour(c.Request().Context(), id); err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusOK, "Flavour deleted successfully", nil)
}
