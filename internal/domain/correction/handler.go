package correction

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nhisvet/vetting/internal/domain/claims"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/claim-item/:itemId/correct", h.Correct)
	api.GET("/claim-item/:itemId/audit", h.AuditTrail)
}

type correctRequest struct {
	Corrections map[string]any `json:"corrections"`
	User        string         `json:"user"`
	Reason      string         `json:"reason"`
}

func (h *Handler) Correct(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	var req correctRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corrections object required")
	}

	err = h.svc.Apply(c.Request().Context(), itemID, req.Corrections, req.User, req.Reason)
	switch {
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, claims.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "item not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) AuditTrail(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	trail, err := h.svc.AuditTrail(c.Request().Context(), itemID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if trail == nil {
		trail = []*AuditRecord{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"audit":   trail,
	})
}
