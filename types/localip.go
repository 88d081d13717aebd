// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/miekg/dns"
)

// UnresolvableHostError signals that the local host could not be resolved
// while normalizing a loopback alias. This is an environment failure rather
// than a caller mistake: a node that cannot tell its own address cannot
// hand out endpoints that peers could ever talk back to. There is
// deliberately no graceful fallback to the loopback literal, as consumers
// rely on normalized addresses being visible beyond the local machine.
type UnresolvableHostError struct {
	Hostname string // the local hostname that failed to resolve, if known
	err      error
}

// Error returns the failed local hostname and the underlying cause.
func (e *UnresolvableHostError) Error() string {
	return fmt.Sprintf("cannot resolve local host %q: %v", e.Hostname, e.err)
}

// Unwrap returns the underlying cause.
func (e *UnresolvableHostError) Unwrap() error { return e.err }

// loopback aliases that get replaced by the resolved local IP address.
const (
	aliasLocalhost = "localhost"
	aliasLoopback4 = "127.0.0.1"
	aliasDebianish = "127.0.1.1"
)

var localIP struct {
	once sync.Once
	addr string
	err  error
}

// normalizeHost replaces the loopback aliases with the local machine's
// resolved IP address and passes every other host string through unchanged.
func normalizeHost(host string) string {
	switch host {
	case aliasLocalhost, aliasLoopback4, aliasDebianish:
		return LocalIPAddress()
	}
	return host
}

// LocalIPAddress returns the textual form of the IP address the local
// hostname resolves to; the address is expected (but not verified) to be
// publicly visible to the node's peers. The resolution happens at most once
// per process, with the outcome cached.
//
// The platform resolver is asked first, so /etc/hosts and the configured
// host lookup order are honored. Should the platform resolver come up
// empty, the nameservers from /etc/resolv.conf are queried directly as a
// last resort. When both attempts fail, LocalIPAddress panics with an
// [*UnresolvableHostError], as such an environment is unusable for handing
// out endpoints.
func LocalIPAddress() string {
	localIP.once.Do(func() {
		localIP.addr, localIP.err = resolveLocalIP()
	})
	if localIP.err != nil {
		panic(localIP.err)
	}
	return localIP.addr
}

// resolveLocalIP determines the local hostname and resolves it into an IP
// address, platform resolver first, raw nameserver queries second.
func resolveLocalIP() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", &UnresolvableHostError{err: err}
	}
	addrs, err := net.DefaultResolver.LookupHost(context.Background(), hostname)
	if err == nil && len(addrs) > 0 {
		return addrs[0], nil
	}
	if addr, dnserr := queryNameservers(hostname); dnserr == nil {
		return addr, nil
	}
	if err == nil {
		err = fmt.Errorf("lookup %s: no addresses", hostname)
	}
	return "", &UnresolvableHostError{Hostname: hostname, err: err}
}

// queryNameservers resolves the given hostname by directly asking the
// nameservers configured in /etc/resolv.conf, preferring A over AAAA
// answers. It returns the first address found.
func queryNameservers(hostname string) (string, error) {
	clientcfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return "", err
	}
	dnsclnt := dns.Client{}
	name := dns.Fqdn(hostname)
	for _, server := range clientcfg.Servers {
		for _, addrType := range []uint16{dns.TypeA, dns.TypeAAAA} {
			msg := dns.Msg{
				MsgHdr: dns.MsgHdr{Id: dns.Id()},
			}
			msg.SetQuestion(name, addrType)
			r, _, err := dnsclnt.Exchange(&msg, net.JoinHostPort(server, clientcfg.Port))
			if err != nil {
				continue
			}
			for _, rr := range r.Answer {
				if addrRR, ok := rr.(*dns.A); ok {
					return addrRR.A.String(), nil
				}
				if addrRR, ok := rr.(*dns.AAAA); ok {
					return addrRR.AAAA.String(), nil
				}
			}
		}
	}
	return "", fmt.Errorf("no answers for %q from the configured nameservers", hostname)
}
