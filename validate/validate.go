// Package validate provides per-field validators for network connection
// settings. Validators are pure functions returning a tri-state result:
// text that is well formed is Acceptable, text that could become well
// formed with further typing is Intermediate, and text that can never
// become well formed is Invalid.
//
// Editors re-run the relevant validator on every keystroke and treat
// only Acceptable as fully valid when gating save actions.
package validate

// State is the tri-state outcome of validating a field's text.
type State int

const (
	// Invalid text can never become acceptable by appending input.
	Invalid State = iota
	// Intermediate text is a prefix of some acceptable input.
	Intermediate
	// Acceptable text is fully well formed.
	Acceptable
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Acceptable:
		return "Acceptable"
	case Intermediate:
		return "Intermediate"
	default:
		return "Invalid"
	}
}

// AddressStyle controls whether an address validator permits a trailing
// /prefix-length suffix.
type AddressStyle int

const (
	// Plain accepts a bare address only.
	Plain AddressStyle = iota
	// WithCIDR additionally accepts an optional /prefix-length suffix.
	WithCIDR
)
