package otp

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/IITBsports/turf-backend/model"
	otpSvc "github.com/IITBsports/turf-backend/service/otp"
)

type Controller struct {
	Svc otpSvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/otp/send
func (h *Controller) Send(c echo.Context) error {
	var req model.SendOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.Send(c.Request().Context(), req.Email); err != nil {
		switch otpSvc.Code(err) {
		case otpSvc.ErrBadDomain:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid IITB email address"})
		default:
			h.Log.Error("otp send", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error sending OTP"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent successfully"})
}

// POST /v1/otp/verify
func (h *Controller) Verify(c echo.Context) error {
	var req model.VerifyOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.Verify(c.Request().Context(), req.Email, req.Code); err != nil {
		switch otpSvc.Code(err) {
		case otpSvc.ErrInvalidOTP:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or expired OTP"})
		default:
			h.Log.Error("otp verify", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error verifying OTP"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP verified successfully"})
}
