// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package check

import (
	"context"

	"github.com/meshkit/hostport/resolve"
	"github.com/meshkit/hostport/types"

	"github.com/miekg/dns"
)

// Checker vets a stream of endpoint addresses, caching verdicts per host as
// to avoiding unnecessary duplicate lookups for endpoints that share their
// host. It uses a [resolve.Pool] for the actual DNS legwork.
type Checker struct {
	news    chan types.Vetted
	pool    *resolve.Pool
	results chan types.Vetted
}

// New returns a new Checker that vets endpoint hosts against the DNS
// resolver at the specified address, with a maximum number of parallel
// lookup workers. It additionally returns the “news stream” over which the
// Checker sends vetting updates for the endpoints submitted to it,
// Checking first, a Valid or Invalid verdict later.
//
// The passed context is used for dialing the resolver connections only, see
// [resolve.New].
func New(ctx context.Context, size int, dnsclnt *dns.Client, resolver string) (*Checker, <-chan types.Vetted, error) {
	pool, err := resolve.New(ctx, size, dnsclnt, resolver)
	if err != nil {
		return nil, nil, err
	}
	news := make(chan types.Vetted, size)
	return &Checker{
		news:    news,
		pool:    pool,
		results: make(chan types.Vetted, size),
	}, news, nil
}

// Check vets the incoming stream of endpoints until the input channel is
// closed. It then waits for all enqueued lookup tasks to complete, closes
// the news channel returned by New, and finally returns.
//
// In case the specified context is cancelled, then Check will stop pulling
// off new endpoints and return as soon as possible, closing the news
// channel.
func (c *Checker) Check(ctx context.Context, in <-chan types.Address) {
	cache := newHostCache()
	// As soon as lookup verdicts trickle in, update the cache so that the
	// cache can inform the consumer of this Checker of the results.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case verdict, ok := <-c.results:
				if !ok {
					return
				}
				cache.Update(ctx, verdict, c.news)
			case <-ctx.Done():
				return
			}
		}
	}()
	// Process incoming endpoints and initiate lookup tasks if a host is
	// seen for the first time. Endpoints on hosts we've already seen will
	// be directly served if their host already received its verdict.
	// Otherwise, these endpoints will be put on hold until the verdict
	// becomes available.
slurpEndpoints:
	for {
		select {
		case addr, ok := <-in:
			if !ok {
				break slurpEndpoints
			}
			checking := &types.VettedValue{Address: addr, State: types.Checking}
			if cache.Update(ctx, checking, c.news) {
				// Only schedule a lookup task the first time we see this
				// particular host.
				c.vet(ctx, addr)
			}
		case <-ctx.Done():
			break slurpEndpoints
		}
	}
	c.pool.StopWait()
	close(c.results)
	// wait for all verdicts to have come through and passed on before
	// calling it a day. In case the context was cancelled we don't wait for
	// the done signal, but leave immediately after closing our "outlet".
	select {
	case <-ctx.Done():
	default:
		<-done
	}
	close(c.news)
}

// vet schedules resolution of the endpoint's host and funnels the verdict
// into the results channel for the cache to distribute.
func (c *Checker) vet(ctx context.Context, addr types.Address) {
	c.pool.ResolveHost(ctx, addr.Host(), func(addrs []string, err error) {
		status := types.Valid
		if err != nil {
			status = types.Invalid
		}
		verdict := (&types.VettedValue{Address: addr}).WithStatus(status, err)
		select {
		case c.results <- verdict:
		case <-ctx.Done():
		}
	})
}
