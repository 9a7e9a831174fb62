package ban

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/IITBsports/turf-backend/model"
	banSvc "github.com/IITBsports/turf-backend/service/ban"
)

type Controller struct {
	Svc banSvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/bans
func (h *Controller) Create(c echo.Context) error {
	var req model.BanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	entry, err := h.Svc.Ban(c.Request().Context(), req.RollNo)
	if err != nil {
		h.Log.Error("ban create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ban": entry})
}
