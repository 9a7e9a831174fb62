package config

import "time"

type App struct {
	Port        string `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Env         string `envconfig:"APP_ENV" default:"dev"`

	// Requester gate
	AllowedEmailDomain string `envconfig:"ALLOWED_EMAIL_DOMAIN" default:"iitb.ac.in"`

	// Outbound mail
	MailFrom         string        `envconfig:"MAIL_FROM" required:"true"`
	SMTPHost         string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort         int           `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser         string        `envconfig:"SMTP_USER" required:"true"`
	SMTPPass         string        `envconfig:"SMTP_PASS" required:"true"`
	SMTPFallbackPort int           `envconfig:"SMTP_FALLBACK_PORT" default:"465"`
	MailMaxRetries   int           `envconfig:"MAIL_MAX_RETRIES" default:"3"`
	MailSendTimeout  time.Duration `envconfig:"MAIL_SEND_TIMEOUT" default:"90s"`
	MailBackoffBase  time.Duration `envconfig:"MAIL_BACKOFF_BASE" default:"1s"`
	MailInterDelay   time.Duration `envconfig:"MAIL_INTER_DELAY" default:"2s"`

	// Record retention (the old Mongo TTL indexes, swept by the janitor)
	RequestRetention time.Duration `envconfig:"REQUEST_RETENTION" default:"168h"`
	BanRetention     time.Duration `envconfig:"BAN_RETENTION" default:"336h"`
	OTPRetention     time.Duration `envconfig:"OTP_RETENTION" default:"5m"`
	CleanupInterval  time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1h"`
}
