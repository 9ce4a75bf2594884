package models

// FloodZone is one flood-prone area as an immutable set of polygon rings.
// Multi-part shapes contribute one ring per part; holes are not tracked,
// a route inside a hole still borders flood terrain and counts as a hit.
type FloodZone struct {
	ID    string
	Name  string
	Rings [][]Coordinate
}
