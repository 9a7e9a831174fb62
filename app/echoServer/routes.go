package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/IITBsports/turf-backend/app/echoServer/controller/ban"
	"github.com/IITBsports/turf-backend/app/echoServer/controller/booking"
	"github.com/IITBsports/turf-backend/app/echoServer/controller/health"
	"github.com/IITBsports/turf-backend/app/echoServer/controller/otp"
	"github.com/IITBsports/turf-backend/app/echoServer/controller/slots"
)

type C struct {
	Booking *booking.Controller
	Slots   *slots.Controller
	Ban     *ban.Controller
	OTP     *otp.Controller
	Health  *health.Controller
}

func Register(e *echo.Echo, c C) {
	// Probes
	e.GET("/health", c.Health.Health)
	e.GET("/email-health", c.Health.EmailHealth)
	e.POST("/test-email", c.Health.TestEmail)

	v1 := e.Group("/v1")

	// Booking requests
	v1.GET("/requests", c.Booking.List)
	v1.GET("/requests/pending/:slot/:date", c.Booking.ListPending)
	v1.POST("/requests", c.Booking.Create)
	v1.DELETE("/requests/:id", c.Booking.Delete)
	v1.PUT("/requests/:id/status", c.Booking.UpdateStatus)
	v1.GET("/requests/:id/queue-position", c.Booking.QueuePosition)

	// Slot availability
	v1.GET("/slots", c.Slots.Board)
	v1.GET("/slots/:slot/:date", c.Slots.Holder)

	// Ban registry
	v1.POST("/bans", c.Ban.Create)

	// OTP gate
	v1.POST("/otp/send", c.OTP.Send)
	v1.POST("/otp/verify", c.OTP.Verify)
}
