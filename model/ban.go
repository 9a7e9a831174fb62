package model

import "time"

type BanEntry struct {
	RollNo    string    `json:"rollno"`
	BannedAt  time.Time `json:"banned_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BanReq is the operator ban payload.
// swagger:model BanReq
type BanReq struct {
	RollNo string `json:"rollno" validate:"required"`
}
