// Package values holds the validated value objects of the configuration
// domain: activity markers, entity names, aliases, and URLs.
package values

import "fmt"

// Marker is the two-state activity flag rendered in marker columns.
type Marker string

const (
	// MarkerActive marks the single active row of a section
	MarkerActive Marker = "Yes"
	// MarkerInactive marks every other row
	MarkerInactive Marker = "No"
)

// MarkerFor converts a boolean activity state to its display marker.
func MarkerFor(active bool) Marker {
	if active {
		return MarkerActive
	}
	return MarkerInactive
}

// Bool reports whether the marker denotes the active state.
func (m Marker) Bool() bool {
	return m == MarkerActive
}

// String returns the display form.
func (m Marker) String() string {
	return string(m)
}

// Validate rejects anything but the two well-known markers.
func (m Marker) Validate() error {
	if m != MarkerActive && m != MarkerInactive {
		return fmt.Errorf("invalid marker %q: must be %q or %q", string(m), MarkerActive, MarkerInactive)
	}
	return nil
}

// Options returns the marker values in display order, for choice editors.
func Options() []string {
	return []string{MarkerActive.String(), MarkerInactive.String()}
}
