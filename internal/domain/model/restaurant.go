package model

import "time"

type Restaurant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatorID *int64    `json:"creator_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
