package reference

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
	ref := api.Group("/reference")
	ref.GET("/medicine/:code", h.GetMedicine)
	ref.GET("/dx/:icd", h.GetRecommended)
}

// GetMedicine returns the dispensing rule for a medicine code, or null
// when the code is unknown. A broken lookup degrades to null as well.
func (h *Handler) GetMedicine(c echo.Context) error {
	res := h.svc.Medicine(c.Request().Context(), c.Param("code"))
	var rule *MedicineRule
	if res.State == StateFound {
		rule = res.Rec
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"medicine": rule,
	})
}

func (h *Handler) GetRecommended(c echo.Context) error {
	res := h.svc.Recommended(c.Request().Context(), c.Param("icd"))
	var recommended *string
	if res.State == StateFound {
		recommended = &res.Rec.Recommended
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"recommended": recommended,
	})
}
