package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/IITBsports/turf-backend/mailer"
)

type Controller struct {
	DB     *pgxpool.Pool
	Sender *mailer.RetrySender
	Queue  *mailer.Queue
	From   string
	Log    *slog.Logger
}

// GET /health
func (h *Controller) Health(c echo.Context) error {
	if err := h.DB.Ping(c.Request().Context()); err != nil {
		h.Log.Error("health db ping", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "DEGRADED", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /email-health
func (h *Controller) EmailHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"email_health": h.Sender.Verify(),
		"queue":        h.Queue.Stats(),
	})
}

// POST /test-email
func (h *Controller) TestEmail(c echo.Context) error {
	h.Queue.Enqueue(mailer.Message{
		From:    h.From,
		To:      h.From,
		Subject: "Test Email Configuration",
		Body:    "This is a test email to verify SMTP configuration.",
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "test email queued", "queue": h.Queue.Stats()})
}
