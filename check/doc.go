/*
Package check implements an endpoint vetting pipeline with per-host caching
in order to avoid expensive duplicate host lookups: a [Checker] consumes a
stream of [types.Address] endpoints and streams [types.Vetted] updates as
the endpoints' hosts get resolved, while a [VettedMap] tracks such an update
stream into the most recent word on every endpoint.

The concrete host resolution is carried out by a resolve.Pool.
*/
package check
