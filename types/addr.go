// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// NullAddress is the well-known "no endpoint here" sentinel; it renders as
// "nullhost:0" and compares equal only to other null addresses.
var NullAddress = New("nullhost", 0)

// Address is an immutable host:port network endpoint. Both fields are fixed
// at construction time; deriving an endpoint with a different port (see
// [Address.WithPort] and [Address.AddPortOffset]) always produces a new
// value. Address is comparable, so endpoints can be compared with == and
// used directly as map keys: two addresses are equal exactly when their
// (normalized) hosts and their ports are equal.
//
// The zero value exists for deserialization purposes only; use [Parse] or
// [New] to obtain a usable Address.
type Address struct {
	host string
	port int
}

// ParseError reports a malformed host-and-port string passed to [Parse]. It
// optionally wraps an underlying cause, such as the port digits overflowing
// the int type.
type ParseError struct {
	Text   string // the offending host-and-port input
	Reason string
	err    error
}

// Error returns the rejected input together with the reason for rejecting
// it.
func (e *ParseError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("cannot parse endpoint %q: %s: %v", e.Text, e.Reason, e.err)
	}
	return fmt.Sprintf("cannot parse endpoint %q: %s", e.Text, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error { return e.err }

// Parse parses a "host:port" string into an [Address]. The port is the run
// of decimal digits after the last colon; everything before the last colon
// is the host, which then undergoes loopback normalization (see [New]).
// Hosts may themselves contain colons, such as unbracketed IPv6 literals,
// but then don't round-trip unambiguously through [Address.String], as
// Parse will happily split such a rendering at the wrong colon.
func Parse(hostport string) (Address, error) {
	if hostport == "" {
		return Address{}, &ParseError{
			Text:   hostport,
			Reason: "host-and-port string must be present",
		}
	}
	colon := strings.LastIndexByte(hostport, ':')
	if colon < 0 {
		return Address{}, &ParseError{
			Text:   hostport,
			Reason: "missing \":port\" suffix",
		}
	}
	host, digits := hostport[:colon], hostport[colon+1:]
	if digits == "" || strings.IndexFunc(digits, notADigit) >= 0 {
		return Address{}, &ParseError{
			Text:   hostport,
			Reason: "port must be one or more decimal digits",
		}
	}
	if host == "" {
		return Address{}, &ParseError{
			Text:   hostport,
			Reason: "host must be present",
		}
	}
	port, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow is left, given the digit-only check above.
		return Address{}, &ParseError{
			Text:   hostport,
			Reason: "port out of range",
			err:    err,
		}
	}
	return New(host, port), nil
}

func notADigit(r rune) bool { return r < '0' || r > '9' }

// New returns an [Address] for the given host and port. The host undergoes
// loopback normalization: the aliases "localhost", "127.0.0.1" and
// "127.0.1.1" are replaced by the local machine's resolved IP address (see
// [LocalIPAddress]); any other host string is taken as-is. Neither the host
// syntax nor the port range are validated.
//
// New panics with an [*UnresolvableHostError] when a loopback alias needs
// normalizing but the local host cannot be resolved: endpoints carrying a
// loopback alias would be unreachable for any remote peer, so an
// environment that cannot tell its own address is considered unusable.
func New(host string, port int) Address {
	return Address{host: normalizeHost(host), port: port}
}

// Host returns the normalized host.
func (a Address) Host() string { return a.host }

// Port returns the port.
func (a Address) Port() int { return a.port }

// WithPort returns a new [Address] with the same host and the given port.
// The host was already normalized during original construction and is not
// normalized again.
func (a Address) WithPort(port int) Address {
	return Address{host: a.host, port: port}
}

// AddPortOffset returns a new [Address] with the same host and the port
// shifted by offset. The sum is plain integer addition without any range
// checking; extreme offsets yield nonsensical ports and that is the
// caller's lookout.
func (a Address) AddPortOffset(offset int) Address {
	return Address{host: a.host, port: a.port + offset}
}

// String renders the endpoint in "host:port" form, the inverse of [Parse]
// for all hosts not containing colons.
func (a Address) String() string {
	return a.host + ":" + strconv.Itoa(a.port)
}
