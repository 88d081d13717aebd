// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package check

import (
	"context"
	"sync"

	"github.com/meshkit/hostport/types"
)

// VettedMap maps endpoints to their most recent vetting state. A typical
// use case for a VettedMap is to consume vetting information from an event
// stream (channel) sending updates as endpoints are submitted, their hosts
// resolved, and finally (in)validated.
type VettedMap struct {
	m  map[types.Address]types.VettedValue
	mu sync.Mutex
}

// NewVettedMap returns a new and properly initialized VettedMap.
func NewVettedMap() *VettedMap {
	return &VettedMap{
		m: map[types.Address]types.VettedValue{},
	}
}

// Get returns all vetted endpoints from the map.
func (m *VettedMap) Get() []types.VettedValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	vetted := make([]types.VettedValue, 0, len(m.m))
	for _, v := range m.m {
		vetted = append(vetted, v)
	}
	return vetted
}

// Update the map with a vetted endpoint, adding endpoints in case they are
// yet unknown. Known endpoints are updated in case their status is
// progressing as follows:
//   - from unchecked to checking
//   - from checking to either valid or invalid
func (m *VettedMap) Update(vetted types.Vetted) {
	if vetted == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	endpoint := vetted.Endpoint()
	if known, ok := m.m[endpoint]; ok {
		if vetted.Status() > known.State { // slightly simplified "update" rule
			m.m[endpoint] = vetted.VV()
		}
		return
	}
	m.m[endpoint] = vetted.VV()
}

// Track vetting updates received from the specified update channel until
// the channel is closed or the context done. Track only returns after
// processing all updates or when the context is done.
func (m *VettedMap) Track(ctx context.Context, news <-chan types.Vetted) error {
	for {
		select {
		case vetted, ok := <-news:
			if !ok {
				return nil
			}
			m.Update(vetted)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
