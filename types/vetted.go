// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// Vetted is an endpoint [Address] together with the vetting [Status] of its
// host. Vetted values travel through channels between the stages of a
// checking pipeline, so the interface exposes getters only; status changes
// always produce new values.
type Vetted interface {
	Endpoint() Address                     // the endpoint under vetting
	Status() Status                        // current vetting state
	Err() error                            // if Status is Invalid, optional additional error information.
	VV() VettedValue                       // returns (a copy of) the vetted endpoint information
	WithStatus(s Status, err error) Vetted // returns a new and updated vetted endpoint
}

// VettedValue implements a concrete representation of a [Vetted] endpoint.
type VettedValue struct {
	Address Address `json:"address"` // the host:port endpoint
	State   Status  `json:"status"`  // vetting state of the endpoint's host
	err     error   // optional error details for invalid endpoints
}

var _ Vetted = (*VettedValue)(nil)

// Endpoint returns the endpoint address under vetting.
func (v *VettedValue) Endpoint() Address { return v.Address }

// Status returns the vetting state.
func (v *VettedValue) Status() Status { return v.State }

// Err returns an optional error that occurred while trying to vet the
// endpoint's host.
func (v *VettedValue) Err() error { return v.err }

// VV returns (a copy of) the vetted endpoint information.
func (v *VettedValue) VV() VettedValue {
	return *v
}

// WithStatus returns newly vetted endpoint information.
func (v *VettedValue) WithStatus(s Status, err error) Vetted {
	return &VettedValue{
		Address: v.Address,
		State:   s,
		err:     err,
	}
}
