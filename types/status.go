// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Status indicates how far the vetting of an endpoint's host has
// progressed, such as unchecked, checking, et cetera.
type Status int

// The vetting states of an endpoint.
const (
	Unchecked Status = iota // endpoint neither in vetting nor vetted.
	Checking                // endpoint in vetting.
	Invalid                 // the endpoint's host could not be resolved.
	Valid                   // the endpoint's host resolved fine.
)

// String returns the clear-text representation of a Status value.
func (s Status) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checking:
		return "checking"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	}
	return fmt.Sprintf("Status(%d)", s)
}

// IsPending returns true as long as an endpoint hasn't received either a
// good or bad final verdict.
func (s Status) IsPending() bool {
	switch s {
	case Unchecked, Checking:
		return true
	default:
		return false
	}
}
