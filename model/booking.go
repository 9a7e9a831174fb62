package model

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusDeclined RequestStatus = "declined"
)

// Terminal reports whether a request in this status can no longer change.
func (s RequestStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// SlotCount is the fixed daily inventory of bookable turf slots.
const SlotCount = 14

// slotTimes maps a slot number to its human-readable time range.
var slotTimes = map[int]string{
	1:  "6:30 AM - 7:30 AM",
	2:  "7:30 AM - 8:30 AM",
	3:  "8:30 AM - 9:30 AM",
	4:  "9:30 AM - 10:30 AM",
	5:  "10:30 AM - 11:30 AM",
	6:  "11:30 AM - 12:30 PM",
	7:  "12:30 PM - 1:30 PM",
	8:  "1:30 PM - 2:30 PM",
	9:  "2:30 PM - 3:30 PM",
	10: "3:30 PM - 5:00 PM",
	11: "5:00 PM - 6:00 PM",
	12: "6:00 PM - 7:00 PM",
	13: "7:00 PM - 8:00 PM",
	14: "8:00 PM - 9:30 PM",
}

// SlotTime returns the time range for a slot number.
func SlotTime(slot int) string {
	if t, ok := slotTimes[slot]; ok {
		return t
	}
	return "Unknown time range"
}

type BookingRequest struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	RollNo       string        `json:"rollno"`
	Email        string        `json:"email"`
	Purpose      string        `json:"purpose"`
	PlayerRollNo string        `json:"player_roll_no"`
	NumPlayers   *int          `json:"no_of_players,omitempty"`
	Slot         int           `json:"slot"`
	Date         string        `json:"date"` // YYYY-MM-DD, civil date
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"` // FIFO ordering key, immutable
}

// SlotClaim mirrors a BookingRequest's status per (rollno, slot, date) and is
// the authoritative record for "is this slot booked" queries. For a given
// (slot, date) at most one claim may be accepted.
type SlotClaim struct {
	ID        string        `json:"id"`
	RollNo    string        `json:"rollno"`
	Slot      int           `json:"slotno"`
	Date      string        `json:"date"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// SlotStatus is one cell of the availability projection.
type SlotStatus struct {
	Slot   int    `json:"slot"`
	Date   string `json:"date"`
	Status string `json:"status"` // available | requested | booked
}

// CreateRequestReq is the booking submission payload.
// swagger:model CreateRequestReq
type CreateRequestReq struct {
	Name         string `json:"name" validate:"required"`
	RollNo       string `json:"rollno" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Purpose      string `json:"purpose" validate:"required,oneof='match among friends' 'council match' 'frisbee club'"`
	PlayerRollNo string `json:"player_roll_no" validate:"required"`
	NumPlayers   *int   `json:"no_of_players" validate:"omitempty,min=1"`
	Slot         int    `json:"slot" validate:"required,min=1,max=14"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateStatusReq is the operator decision payload.
// swagger:model UpdateStatusReq
type UpdateStatusReq struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}
