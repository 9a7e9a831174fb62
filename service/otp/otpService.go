package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/IITBsports/turf-backend/mailer"
)

type ErrCode string

const (
	ErrBadDomain  ErrCode = "INVALID_EMAIL_DOMAIN"
	ErrInvalidOTP ErrCode = "INVALID_OTP"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Save(ctx context.Context, email, code string) error
	Consume(ctx context.Context, email, code string, freshness time.Duration) (bool, error)
}

type Notifier interface {
	Enqueue(m mailer.Message)
}

type Service interface {
	// Send mails a fresh 6-digit code to an address on the allowed domain.
	Send(ctx context.Context, email string) error

	// Verify consumes a fresh matching code; wrong or stale codes fail.
	Verify(ctx context.Context, email, code string) error
}

type service struct {
	r         Repo
	mail      Notifier
	from      string
	domain    string
	freshness time.Duration
}

func New(r Repo, mail Notifier, from, domain string, freshness time.Duration) Service {
	return &service{r: r, mail: mail, from: from, domain: domain, freshness: freshness}
}

func (s *service) Send(ctx context.Context, email string) error {
	if !strings.HasSuffix(strings.ToLower(email), "@"+s.domain) {
		return makeErr(ErrBadDomain)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.r.Save(ctx, email, code); err != nil {
		return err
	}

	s.mail.Enqueue(mailer.Message{
		From:    s.from,
		To:      email,
		Subject: "Your OTP for Booking",
		Body:    fmt.Sprintf("Your OTP is %s. It is valid for 5 minutes.", code),
	})
	return nil
}

func (s *service) Verify(ctx context.Context, email, code string) error {
	ok, err := s.r.Consume(ctx, email, code, s.freshness)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrInvalidOTP)
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
