/*
Package resolve implements a simple limiting DNS client-request execution
pool. The endpoint checking pipeline uses a [Pool] of “DNS workers” for
A/AAAA lookups of endpoint hosts. Please note that the A/AAAA queries for a
single host are not concurrent.

Usage

	dnsclnt := dns.Client{}
	workers := resolve.New(
	    context.Background(),
	    4,                    // number of parallel DNS connections and thus workers
	    &dnsclnt,             // DNS client
	    "127.0.0.1:53",       // address of server/resolver
	)
	workers.ResolveHost(
	    ctx,
	    "foobar.example.org",
	    func(addrs []string, err error){
	        // do something with addrs, unless there's an error reported
	    })
	workers.Submit(func(conn *dns.Conn){
	    // do something with the DNS connection
	})

Hosts that already are IP literals never hit the resolver; they are passed
back to the callback as-is.

# Acknowledgements

Under its hood, [Pool] leverages [github.com/gammazero/workerpool] as the
limiting goroutine pool.

[github.com/gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package resolve
