// Package main turf booking API.
//
// Booking backend for the Gymkhana Football Turf: slot requests, FIFO
// allocation with cascading auto-decline, queued email notifications, and a
// time-limited ban registry.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/IITBsports/turf-backend/app/echoServer"
	banctrl "github.com/IITBsports/turf-backend/app/echoServer/controller/ban"
	bookingctrl "github.com/IITBsports/turf-backend/app/echoServer/controller/booking"
	healthctrl "github.com/IITBsports/turf-backend/app/echoServer/controller/health"
	otpctrl "github.com/IITBsports/turf-backend/app/echoServer/controller/otp"
	slotsctrl "github.com/IITBsports/turf-backend/app/echoServer/controller/slots"
	"github.com/IITBsports/turf-backend/app/echoServer/validation"
	"github.com/IITBsports/turf-backend/config"
	"github.com/IITBsports/turf-backend/mailer"
	banrepo "github.com/IITBsports/turf-backend/repository/ban"
	bookingrepo "github.com/IITBsports/turf-backend/repository/booking"
	otprepo "github.com/IITBsports/turf-backend/repository/otp"
	bansvc "github.com/IITBsports/turf-backend/service/ban"
	bookingsvc "github.com/IITBsports/turf-backend/service/booking"
	"github.com/IITBsports/turf-backend/service/cleanup"
	otpsvc "github.com/IITBsports/turf-backend/service/otp"
	slotssvc "github.com/IITBsports/turf-backend/service/slots"
	"github.com/IITBsports/turf-backend/util/database"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	// mail: primary STARTTLS relay, then the implicit-TLS port as fallback
	transports := []mailer.Transport{
		mailer.NewSMTPTransport(mailer.SMTPConfig{
			Name: "primary", Host: cfg.SMTPHost, Port: cfg.SMTPPort,
			User: cfg.SMTPUser, Pass: cfg.SMTPPass,
		}),
		mailer.NewSMTPTransport(mailer.SMTPConfig{
			Name: "fallback", Host: cfg.SMTPHost, Port: cfg.SMTPFallbackPort,
			User: cfg.SMTPUser, Pass: cfg.SMTPPass,
		}),
	}
	sender := mailer.NewRetrySender(transports, cfg.MailMaxRetries, cfg.MailSendTimeout, cfg.MailBackoffBase, log)
	queue := mailer.NewQueue(sender, cfg.MailInterDelay, log)

	// repos
	br := bookingrepo.New(db)
	nr := banrepo.New(db)
	or := otprepo.New(db)

	// services
	bans := bansvc.New(nr, cfg.BanRetention)
	bookings := bookingsvc.New(br, bans, queue, cfg.MailFrom, log)
	board := slotssvc.New(br)
	otps := otpsvc.New(or, queue, cfg.MailFrom, cfg.AllowedEmailDomain, cfg.OTPRetention)
	cleaner := cleanup.New(br, nr, or, cfg.RequestRetention, cfg.OTPRetention)

	// retention sweep
	go func() {
		t := time.NewTicker(cfg.CleanupInterval)
		defer t.Stop()
		for range t.C {
			rep, err := cleaner.SweepExpired(ctx)
			if err != nil {
				log.Error("retention sweep failed", "err", err)
				continue
			}
			if rep.Requests+rep.Bans+rep.OTPs > 0 {
				log.Info("retention sweep",
					"requests", rep.Requests, "bans", rep.Bans, "otps", rep.OTPs)
			}
		}
	}()

	// controllers
	v := validator.New()
	bookingC := &bookingctrl.Controller{Svc: bookings, V: v, Log: log}
	slotsC := &slotsctrl.Controller{Svc: board, Log: log}
	banC := &banctrl.Controller{Svc: bans, V: v, Log: log}
	otpC := &otpctrl.Controller{Svc: otps, V: v, Log: log}
	healthC := &healthctrl.Controller{DB: db, Sender: sender, Queue: queue, From: cfg.MailFrom, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	echoServer.Register(e, echoServer.C{
		Booking: bookingC,
		Slots:   slotsC,
		Ban:     banC,
		OTP:     otpC,
		Health:  healthC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
