package model

import "time"

type OTP struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// SendOTPReq asks for a verification code to be mailed.
// swagger:model SendOTPReq
type SendOTPReq struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPReq checks a previously mailed code.
// swagger:model VerifyOTPReq
type VerifyOTPReq struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp" validate:"required,len=6,numeric"`
}
