package models

import "time"

// Event is a single timestamped intelligence item in a snapshot. Events are
// constructed by the caller and never mutated by the engine.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Region    string    `json:"region"`
	Category  string    `json:"category"`
	Source    string    `json:"source"`
	Keywords  []string  `json:"keywords"`
}

// HasCoordinates reports whether both coordinates are present. A value of
// exactly zero is a valid coordinate; absence is modeled with nil pointers.
func (e *Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// StoryFilter narrows story listings.
type StoryFilter struct {
	Region   string
	Category string
	Limit    int
}
