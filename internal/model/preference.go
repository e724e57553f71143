package model

import "time"

// Preference holds a user's persisted display settings. It replaces the
// browser-storage sort config of the web client with a server-side record
// loaded at startup and saved on change.
type Preference struct {
	OwnerEmail string    `json:"-"`
	SortKey    string    `json:"sortKey"`
	Direction  string    `json:"direction"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DefaultPreference is returned when an owner has never saved one.
func DefaultPreference(ownerEmail string) *Preference {
	return &Preference{
		OwnerEmail: ownerEmail,
		SortKey:    "time",
		Direction:  "asc",
	}
}

// UpdatePreferenceRequest is the payload for saving display settings.
type UpdatePreferenceRequest struct {
	SortKey   string `json:"sortKey" binding:"required,oneof=courseCode title units days time room instructor"`
	Direction string `json:"direction" binding:"required,oneof=asc desc"`
}
