// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package check

import (
	"context"
	"sync"

	"github.com/meshkit/hostport/types"
)

// hostCache caches host verdicts so that unnecessary duplicate lookups can
// be avoided for endpoints sharing the same host, yet verdicts distributed
// at once to all endpoints pending on the same host.
type hostCache struct {
	mu sync.Mutex
	m  map[string]verdictConsumers // host -> list of pending endpoint consumers
}

// newHostCache returns a new hostCache object.
func newHostCache() *hostCache {
	return &hostCache{
		m: map[string]verdictConsumers{},
	}
}

// verdictConsumers is a list of endpoints that share the same underlying
// host and thus want to learn about any updates in that host's vetting
// status.
type verdictConsumers struct {
	s         types.Status
	err       error           // optional error reason for an invalid verdict
	consumers []types.Address // waiting endpoints that want to consume verdict updates.
}

// Update checks the specified vetted endpoint to see if its host is a new
// (unchecked) host which hasn't yet been cached. In this case it returns
// true to signal a new host to the caller, so that the caller, for
// instance, can start resolving the new host. Update returns false if the
// host has already been seen, and the endpoint for this host is cached. If
// the host is already in the cache and its status is a final verdict of
// Valid or Invalid, then this update is automatically sent to the news
// consumer for all endpoints associated with this host.
func (c *hostCache) Update(ctx context.Context, vetted types.Vetted, news chan<- types.Vetted) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	host := vetted.Endpoint().Host()
	vc, ok := c.m[host]
	if !ok {
		// This is the first time we see this host, so we add it to our
		// cache without any further ado.
		//
		// Note: we assume that a new host always enters in states Unchecked
		// or Checking, so there will always be a later verdict update to be
		// expected.
		c.m[host] = verdictConsumers{
			s:         vetted.Status(),
			consumers: []types.Address{vetted.Endpoint()},
		}
		select {
		case news <- vetted:
		case <-ctx.Done():
		}
		return true
	}
	// So, this host is already known. Check whether the endpoint is among
	// the registered consumers for this host.
	knownConsumer := false
	endpoint := vetted.Endpoint()
	for _, consumer := range vc.consumers {
		if consumer == endpoint {
			knownConsumer = true
		}
	}
	if vetted.Status() <= vc.s {
		// send an update with the most recent status known, as the state
		// specified in the Update is already stale. We only need to inform
		// about this specific endpoint, no other consumers affected.
		if !knownConsumer {
			vc.consumers = append(vc.consumers, endpoint)
			c.m[host] = vc
			select {
			case news <- vetted.WithStatus(vc.s, vc.err):
			case <-ctx.Done():
			}
		}
		return false
	}
	// update the cached status
	vc.s = vetted.Status()
	vc.err = vetted.Err()
	// This host is already known, so now check if it is still in vetting or
	// not. If in vetting, then register the current endpoint as a consumer
	// for a later verdict update (if not already registered). If the
	// verdict is already in, notify all registered consumers.
	var consumers []types.Address
	switch vc.s {
	case types.Unchecked, types.Checking:
		if !knownConsumer {
			vc.consumers = append(vc.consumers, endpoint)
		}
		consumers = vc.consumers
	default:
		// As we've reached one of the terminal verdicts, notify all
		// registered consumers and then clear the registration list: all
		// further Update attempts will always be immediately served for the
		// particular endpoint, as there won't be any status changes anymore
		// to be sent to waiting consumers.
		consumers, vc.consumers = vc.consumers, nil
	}
	c.m[host] = vc // update cache with most recent verdict and consumers.
	// notify all registered consumers of this verdict update.
	for _, consumer := range consumers {
		update := (&types.VettedValue{Address: consumer}).WithStatus(vc.s, vc.err)
		select {
		case news <- update:
		case <-ctx.Done(): // bail out immediately.
			return false
		}
	}
	return false
}
