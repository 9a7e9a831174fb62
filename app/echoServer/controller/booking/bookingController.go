package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/IITBsports/turf-backend/model"
	bs "github.com/IITBsports/turf-backend/service/booking"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/requests
func (h *Controller) List(c echo.Context) error {
	reqs, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("request list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reqs})
}

// GET /v1/requests/pending/:slot/:date
func (h *Controller) ListPending(c echo.Context) error {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil || slot < 1 || slot > model.SlotCount {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid slot"})
	}
	date := c.Param("date")

	reqs, err := h.Svc.ListPending(c.Request().Context(), slot, date)
	if err != nil {
		h.Log.Error("pending list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reqs})
}

// POST /v1/requests
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Submit(c.Request().Context(), req)
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrBanned:
			return c.JSON(http.StatusForbidden, echo.Map{
				"message": "Booking denied: You are currently restricted from this service",
			})
		default:
			h.Log.Error("request create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"request":      out.Request,
		"message":      "Request submitted successfully. Requests are processed first-come-first-served by submission time.",
		"email_queued": out.EmailQueued,
	})
}

// DELETE /v1/requests/:id
func (h *Controller) Delete(c echo.Context) error {
	id := c.Param("id")

	if err := h.Svc.Cancel(c.Request().Context(), id); err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
		default:
			h.Log.Error("request delete", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Request deleted successfully"})
}

// PUT /v1/requests/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id := c.Param("id")

	var req model.UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status"})
	}

	out, err := h.Svc.Decide(c.Request().Context(), id, model.RequestStatus(req.Status))
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status"})
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
		default:
			h.Log.Error("request decide", "err", err, "id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Status updated successfully",
		"request":       out.Request,
		"auto_declined": out.AutoDeclined,
		"email_queued":  out.EmailQueued,
	})
}

// GET /v1/requests/:id/queue-position
func (h *Controller) QueuePosition(c echo.Context) error {
	id := c.Param("id")

	pos, err := h.Svc.QueuePosition(c.Request().Context(), id)
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
		default:
			h.Log.Error("queue position", "err", err, "id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	if pos.Position == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"message":  "Request is " + string(pos.Status),
			"position": nil,
			"status":   pos.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Queue position calculated",
		"position":     pos.Position,
		"status":       pos.Status,
		"request_time": pos.RequestTime,
		"slot":         pos.Slot,
		"date":         pos.Date,
	})
}
