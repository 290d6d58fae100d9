package domain

import "time"

type TimeSlot struct {
	ID        int64     `json:"id"`
	SlotName  string    `json:"slot_name"`
	CreatedAt time.Time `json:"created_at"`
}
