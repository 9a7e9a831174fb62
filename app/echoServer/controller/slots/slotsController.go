package slots

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/IITBsports/turf-backend/model"
	ss "github.com/IITBsports/turf-backend/service/slots"
)

type Controller struct {
	Svc ss.Service
	Log *slog.Logger
}

// GET /v1/slots
func (h *Controller) Board(c echo.Context) error {
	board, err := h.Svc.Board(c.Request().Context())
	if err != nil {
		h.Log.Error("slot board", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, board)
}

// GET /v1/slots/:slot/:date
func (h *Controller) Holder(c echo.Context) error {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil || slot < 1 || slot > model.SlotCount {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid slot"})
	}
	date := c.Param("date")

	claim, err := h.Svc.AcceptedHolder(c.Request().Context(), slot, date)
	if err != nil {
		h.Log.Error("slot holder", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if claim == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Empty slot"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Slot found",
		"data":    claim,
	})
}
