package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/protein のハンドラ。参照は公開、変更はadminのみ。
type ProteinHandler struct {
	uc *usecase.ProteinUsecase
}

func NewProteinHandler(uc *usecase.ProteinUsecase) *ProteinHandler {
	return &ProteinHandler{uc: uc}
}

func (h *ProteinHandler) RegisterRoutes(e *echo.Echo, optionalAuth, requireAuth, adminOnly echo.MiddlewareFunc) {
	e.GET("/api/protein", h.list, optionalAuth)
	e.GET("/api/protein/:id", h.detail, optionalAuth)
	e.POST("/api/protein", h.create, requireAuth, adminOnly)
	e.DELETE("/api/protein/:id", h.delete, requireAuth, adminOnly)
	e.POST("/api/protein/:id/cuts", h.addCut, requireAuth, adminOnly)
	e.POST("/api/protein/:id/flavours", h.addFlavour, requireAuth, adminOnly)
}

func (h *ProteinHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusOK, "Proteins retrieved successfully", items)
}

func (h *ProteinHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid id")
	}

	detail, err := h.uc.Detail(c.Request().Context(), id)
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusOK, "Protein retrieved successfully", detail)
}

type createNameRequest struct {
	Name string `json:"name"`
}

func (h *ProteinHandler) create(c echo.Context) error {
	var req createNameRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	p, err := h.uc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusCreated, "Protein created successfully", p)
}

func (h *ProteinHandler) delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusOK, "Protein deleted successfully", nil)
}

type addLinkRequest struct {
	CutID     int64   `json:"cut_id"`
	FlavourID int64   `json:"flavour_id"`
	Price     float64 `json:"price"`
}

func (h *ProteinHandler) addCut(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid id")
	}

	var req addLinkRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	if err := h.uc.AddCut(c.Request().Context(), id, req.CutID, req.Price); err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusCreated, "Cut linked successfully", nil)
}

func (h *ProteinHandler) addFlavour(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid id")
	}

	var req addLinkRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	if err := h.uc.AddFlavour(c.Request().Context(), id, req.FlavourID, req.Price); err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusCreated, "Flavour linked successfully", nil)
}

func parseIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
