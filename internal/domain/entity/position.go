// Package entity contains the core business objects of the project.
package entity

// Position is an immutable geographic coordinate in decimal degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`  // In [-90, 90].
	Longitude float64 `json:"longitude"` // In [-180, 180].
}
