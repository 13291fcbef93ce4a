package sync

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	grp := api.Group("/sync")
	grp.POST("/push", h.Push)
	grp.GET("/pull", h.Pull)
}

type pushRequest struct {
	Claims []ClaimBatch `json:"claims"`
}

func (h *Handler) Push(c echo.Context) error {
	var req pushRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid push payload")
	}
	received, err := h.svc.Push(c.Request().Context(), req.Claims)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"received": received,
	})
}

func (h *Handler) Pull(c echo.Context) error {
	snap, err := h.svc.Pull(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":        true,
		"benefit_list":   snap.BenefitList,
		"medicine_rules": snap.MedicineRules,
		"dx_tx_map":      snap.DxTxMap,
	})
}
