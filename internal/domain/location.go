package domain

import "strings"

// A free-form place the routing provider can resolve: a street address,
// a landmark name, or a "lat,lng" pair.
type Location string

// Normalize collapses whitespace so equal addresses compare equal.
func (l Location) Normalize() Location {
	return Location(strings.Join(strings.Fields(string(l)), " "))
}

func (l Location) IsEmpty() bool { return l.Normalize() == "" }

func (l Location) String() string { return string(l) }

// SingleOrigin wraps a lone location as a one-element origin list.
func SingleOrigin(l Location) []Location { return []Location{l} }

// Saved named location. Requests may reference it as "@name".
type Place struct {
	Name    string
	Address Location
}
