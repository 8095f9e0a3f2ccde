// Package model defines the records the API stores and returns.
//
// Both records are plain structs with JSON tags matching the wire format the
// frontend already consumes (`_id`, `createdAt`, `cloudinaryId`). Storage
// backends translate to and from their own document shapes; the model never
// carries driver-specific types.
package model

import "time"

// Memory is a titled, dated event, optionally with an image hosted by the
// media store.
//
// Image and CloudinaryID are pointers so that "no image" encodes as JSON
// null rather than an empty string. They are either both nil or both set.
type Memory struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Description  string    `json:"description"`
	Tag          string    `json:"tag"`
	Image        *string   `json:"image"`
	CloudinaryID *string   `json:"cloudinaryId"`
	Favorite     bool      `json:"favorite"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasAsset reports whether the memory references a hosted media asset.
func (m *Memory) HasAsset() bool {
	return m.CloudinaryID != nil && *m.CloudinaryID != ""
}
