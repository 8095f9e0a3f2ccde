package model

import "time"

// GuestbookEntry is a visitor's name and message. Entries are never edited
// or deleted through the API.
type GuestbookEntry struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
