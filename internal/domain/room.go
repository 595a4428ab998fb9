package domain

import "time"

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
	RoomStatusDisabled    RoomStatus = "DISABLED"
)

type Room struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Code         string     `json:"code"`
	Location     string     `json:"location,omitempty"`
	Capacity     int32      `json:"capacity"`
	Status       RoomStatus `json:"status"`
	NeedApproval bool       `json:"need_approval"`
	CreatedOn    time.Time  `json:"created_on"`
	UpdatedOn    time.Time  `json:"updated_on"`
}
