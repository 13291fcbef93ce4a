package claims

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/claims/:claimId/items", h.GetClaimItems)
	api.GET("/claim-item/:itemId", h.GetItem)
}

func (h *Handler) GetClaimItems(c echo.Context) error {
	claimID, err := uuid.Parse(c.Param("claimId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid claim id")
	}
	items, err := h.svc.ListItemsByClaim(c.Request().Context(), claimID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*ClaimItem{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
	})
}

func (h *Handler) GetItem(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	item, err := h.svc.GetItem(c.Request().Context(), itemID)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"item":    item,
	})
}
